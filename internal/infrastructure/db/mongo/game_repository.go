package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

const collectionGames = "games"

type GameRepository struct {
	col *mongo.Collection
}

func NewGameRepository(db *mongo.Database) *GameRepository {
	return &GameRepository{col: db.Collection(collectionGames)}
}

type mongoGame struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Developer   string             `bson:"developer"`
	Genres      []string           `bson:"genres"`
	Platforms   []string           `bson:"platforms"`
	ReleaseYear int                `bson:"release_year"`
	CoverURL    string             `bson:"cover_url,omitempty"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mg *mongoGame) toDomain() *domain.Game {
	return &domain.Game{
		ID:          mg.ID.Hex(),
		Title:       mg.Title,
		Developer:   mg.Developer,
		Genres:      mg.Genres,
		Platforms:   mg.Platforms,
		ReleaseYear: mg.ReleaseYear,
		CoverURL:    mg.CoverURL,
		CreatedBy:   mg.CreatedBy,
		CreatedAt:   mg.CreatedAt,
		UpdatedAt:   mg.UpdatedAt,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoGame{
		Title:       game.Title,
		Developer:   game.Developer,
		Genres:      game.Genres,
		Platforms:   game.Platforms,
		ReleaseYear: game.ReleaseYear,
		CoverURL:    game.CoverURL,
		CreatedBy:   game.CreatedBy,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateGame
		}
		return nil, fmt.Errorf("insert game: %w", err)
	}

	created := *game
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	var mg mongoGame
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGameNotFound
		}
		return nil, fmt.Errorf("find game: %w", err)
	}
	return mg.toDomain(), nil
}

// listQuery builds the Mongo filter document. The search string is quoted
// before it becomes a regex so user-supplied metacharacters match literally
// instead of altering the pattern.
func listQuery(filter ports.ListGamesFilter) bson.M {
	query := bson.M{}
	if filter.Genre != "" {
		query["genres"] = filter.Genre
	}
	if filter.Platform != "" {
		query["platforms"] = filter.Platform
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"developer": regex},
		}
	}
	return query
}

// List returns a page of games matching the filter and the total count.
func (r *GameRepository) List(ctx context.Context, filter ports.ListGamesFilter) ([]*domain.Game, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := listQuery(filter)

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	defer cur.Close(ctx)

	var games []*domain.Game
	for cur.Next(ctx) {
		var mg mongoGame
		if err := cur.Decode(&mg); err != nil {
			return nil, 0, fmt.Errorf("decode game: %w", err)
		}
		games = append(games, mg.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate games: %w", err)
	}

	return games, total, nil
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(game.ID)
	if err != nil {
		return nil, domain.ErrGameNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":        game.Title,
			"developer":    game.Developer,
			"genres":       game.Genres,
			"platforms":    game.Platforms,
			"release_year": game.ReleaseYear,
			"cover_url":    game.CoverURL,
			"updated_at":   game.UpdatedAt,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update game: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGameNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrGameNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by List.
func (r *GameRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "genres", Value: 1}}},
		{Keys: bson.D{{Key: "platforms", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
