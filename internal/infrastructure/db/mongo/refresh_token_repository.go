package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/playlog/playlog-api/internal/core/domain"
)

const collectionRefreshTokens = "refresh_tokens"

// RefreshTokenRepository persists refresh tokens keyed by their hash. The
// unique index on token_hash is what makes in-place rotation safe: a
// rotated-away hash can never match twice.
type RefreshTokenRepository struct {
	col *mongo.Collection
}

func NewRefreshTokenRepository(db *mongo.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{col: db.Collection(collectionRefreshTokens)}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) FindByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var token domain.RefreshToken
	if err := r.col.FindOne(ctx, bson.M{"token_hash": hash}).Decode(&token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	return &token, nil
}

// Rotate swaps the stored hash and expiry in a single conditional update.
// The filter on oldHash is the compare-and-swap: when a concurrent request
// already rotated the row, MatchedCount is zero and the caller loses.
// user_id and created_at are untouched, so the row keeps its identity.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash, newHash string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"token_hash": oldHash},
		bson.M{"$set": bson.M{
			"token_hash": newHash,
			"expires_at": expiresAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRefreshTokenNotFound
	}
	return nil
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"token_hash": hash})
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteByUserID revokes every token the user holds. Deleting zero rows is
// not an error; the user may simply have no live sessions.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete refresh tokens for user: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique token_hash index and a user_id index for
// revocation sweeps.
func (r *RefreshTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
