package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollection = "state"

// Server error codes reported when a write exceeds the disk or a quota.
var mongoCapacityCodes = []int{12501, 14031}

var _ domain.KeyValueStore = (*MongoStore)(nil)

type MongoStore struct {
	collection *mongo.Collection
}

type stateDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection(stateCollection)}
}

func (s *MongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc stateDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("repository: load %s failed: %w", key, err)
	}

	return []byte(doc.Value), nil
}

func (s *MongoStore) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"value":      string(value),
		"updated_at": time.Now().UTC(),
	}}

	_, err := s.collection.UpdateByID(ctx, key, update, options.Update().SetUpsert(true))
	if err != nil {
		var serverErr mongo.ServerError
		if errors.As(err, &serverErr) {
			for _, code := range mongoCapacityCodes {
				if serverErr.HasErrorCode(code) {
					return fmt.Errorf("repository: save %s: %w", key, domain.ErrStorageFull)
				}
			}
		}
		return fmt.Errorf("repository: save %s failed: %w", key, err)
	}

	return nil
}
