package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Revocation records a logged-out token so revocations survive restarts.
type Revocation struct {
	Token     string    `bson:"_id"`
	ExpiresAt time.Time `bson:"expiresAt"`
}

func InsertRevocation(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := collection(RevokedTokensCollection).InsertOne(ctx, Revocation{
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return fmt.Errorf("error persisting revocation: %w", err)
	}
	return nil
}

// LoadActiveRevocations returns every revocation that has not yet expired.
// Called once at startup to seed the in-memory blacklist.
func LoadActiveRevocations(ctx context.Context) ([]Revocation, error) {
	cursor, err := collection(RevokedTokensCollection).Find(ctx, bson.M{
		"expiresAt": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		return nil, fmt.Errorf("error loading revocations: %w", err)
	}
	defer cursor.Close(ctx)

	revocations := []Revocation{}
	if err := cursor.All(ctx, &revocations); err != nil {
		return nil, fmt.Errorf("error decoding revocations: %w", err)
	}
	return revocations, nil
}
