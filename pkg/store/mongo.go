package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	jerrors "github.com/matzehuels/jarscope/pkg/errors"
)

// Defaults for [NewMongoStore].
const (
	DefaultMongoDatabase   = "jarscope"
	DefaultMongoCollection = "lookups"
)

// MongoStore keeps entries as documents keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	prefix string
}

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to uri and verifies the connection with a ping.
// Empty database and collection names select the defaults.
func NewMongoStore(ctx context.Context, uri, database, collection, prefix string) (*MongoStore, error) {
	if uri == "" {
		return nil, jerrors.New(jerrors.ErrCodeInvalidConfig, "mongo uri is required")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
		prefix: prefix,
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var e mongoEntry
	err := s.coll.FindOne(ctx, bson.M{"_id": s.prefix + key}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return e.Data, true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, data []byte) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": s.prefix + key},
		bson.M{"$set": bson.M{"data": data, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.prefix + key})
	return err
}

// Clear deletes every document whose key carries the store's prefix.
func (s *MongoStore) Clear(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(s.prefix)}})
	return err
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
