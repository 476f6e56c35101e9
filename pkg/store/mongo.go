package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/lewis/pkg/graph"
)

// Defaults for [MongoOptions].
const (
	DefaultDatabase   = "lewis"
	DefaultCollection = "structures"
	connectTimeout    = 10 * time.Second
)

// MongoOptions configures [NewMongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, pings the server and ensures the
// unique (formula, index) index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("mongo: empty URI")
	}
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "formula", Value: 1}, {Key: "index", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

// Save upserts each structure by (formula, index).
func (s *MongoStore) Save(ctx context.Context, structures []graph.Structure) error {
	if len(structures) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, len(structures))
	for i, st := range structures {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "formula", Value: st.Formula}, {Key: "index", Value: st.Index}}).
			SetReplacement(st).
			SetUpsert(true)
	}
	if _, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("mongo save %s: %w", structures[0].Formula, err)
	}
	return nil
}

// Find returns the structures of formula ordered by index.
func (s *MongoStore) Find(ctx context.Context, formula string) ([]graph.Structure, error) {
	cur, err := s.coll.Find(ctx,
		bson.D{{Key: "formula", Value: formula}},
		options.Find().SetSort(bson.D{{Key: "index", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", formula, err)
	}
	out := []graph.Structure{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo decode %s: %w", formula, err)
	}
	return out, nil
}

// Formulas lists the distinct stored formulas.
func (s *MongoStore) Formulas(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "formula", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo distinct: %w", err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if f, ok := v.(string); ok {
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
