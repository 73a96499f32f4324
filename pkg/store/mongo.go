package store

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Defaults used when the MongoDB URL names no database.
const (
	DefaultMongoDatabase   = "tilegrid"
	DefaultMongoCollection = "snapshots"
)

// MongoStore keeps one document per key.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoDoc struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoStore connects to uri. The database is taken from the URI path and
// defaults to DefaultMongoDatabase.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}
	coll := client.Database(mongoDatabase(uri)).Collection(DefaultMongoCollection)
	return &MongoStore{client: client, coll: coll}, nil
}

func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return DefaultMongoDatabase
	}
	if db := strings.Trim(u.Path, "/"); db != "" {
		return db
	}
	return DefaultMongoDatabase
}

// Get retrieves a value from the store.
func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := errors.ValidateStoreKey(key); err != nil {
		return nil, false, err
	}
	var doc mongoDoc
	miss := false
	err := RetryWithBackoff(ctx, func() error {
		err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
		if stderrors.Is(err, mongo.ErrNoDocuments) {
			miss = true
			return nil
		}
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return Retryable(err)
		}
		return err
	})
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "mongo get %s", key)
	}
	if miss {
		return nil, false, nil
	}
	return doc.Data, true, nil
}

// Set upserts a value.
func (s *MongoStore) Set(ctx context.Context, key string, data []byte) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"data": data, "updatedAt": time.Now().UTC()}}
	err := RetryWithBackoff(ctx, func() error {
		_, err := s.coll.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return Retryable(err)
		}
		return err
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "mongo set %s", key)
	}
	return nil
}

// Delete removes a value from the store.
func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if err := errors.ValidateStoreKey(key); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "mongo delete %s", key)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
