package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playlog/playlog-api/internal/core/domain"
	"github.com/playlog/playlog-api/internal/core/ports"
)

const collectionPlays = "plays"

type PlayRepository struct {
	col *mongo.Collection
}

func NewPlayRepository(db *mongo.Database) *PlayRepository {
	return &PlayRepository{col: db.Collection(collectionPlays)}
}

type mongoPlay struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	GameID      string             `bson:"game_id"`
	PlayedAt    time.Time          `bson:"played_at"`
	DurationMin int                `bson:"duration_min"`
	Rating      int                `bson:"rating,omitempty"`
	Notes       string             `bson:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mp *mongoPlay) toDomain() *domain.Play {
	return &domain.Play{
		ID:          mp.ID.Hex(),
		UserID:      mp.UserID,
		GameID:      mp.GameID,
		PlayedAt:    mp.PlayedAt,
		DurationMin: mp.DurationMin,
		Rating:      mp.Rating,
		Notes:       mp.Notes,
		CreatedAt:   mp.CreatedAt,
	}
}

func (r *PlayRepository) Create(ctx context.Context, play *domain.Play) (*domain.Play, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPlay{
		UserID:      play.UserID,
		GameID:      play.GameID,
		PlayedAt:    play.PlayedAt,
		DurationMin: play.DurationMin,
		Rating:      play.Rating,
		Notes:       play.Notes,
		CreatedAt:   play.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert play: %w", err)
	}

	created := *play
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PlayRepository) FindByID(ctx context.Context, id string) (*domain.Play, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlayNotFound
	}

	var mp mongoPlay
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayNotFound
		}
		return nil, fmt.Errorf("find play: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *PlayRepository) List(ctx context.Context, filter ports.ListPlaysFilter) ([]*domain.Play, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"user_id": filter.UserID}
	if filter.GameID != "" {
		query["game_id"] = filter.GameID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count plays: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "played_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list plays: %w", err)
	}
	defer cur.Close(ctx)

	var plays []*domain.Play
	for cur.Next(ctx) {
		var mp mongoPlay
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode play: %w", err)
		}
		plays = append(plays, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate plays: %w", err)
	}

	return plays, total, nil
}

func (r *PlayRepository) Update(ctx context.Context, play *domain.Play) (*domain.Play, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(play.ID)
	if err != nil {
		return nil, domain.ErrPlayNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"played_at":    play.PlayedAt,
			"duration_min": play.DurationMin,
			"rating":       play.Rating,
			"notes":        play.Notes,
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update play: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPlayNotFound
	}
	return play, nil
}

func (r *PlayRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPlayNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete play: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlayNotFound
	}
	return nil
}

func (r *PlayRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete plays for user: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used by List and DeleteByUserID.
func (r *PlayRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "played_at", Value: -1}}},
		{Keys: bson.D{{Key: "game_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
