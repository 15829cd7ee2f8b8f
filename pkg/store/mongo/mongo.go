// Package mongo stores unit definitions in a MongoDB collection, one
// document per definition with the symbol as its _id.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	errs "github.com/matzehuels/units/pkg/errors"
	"github.com/matzehuels/units/pkg/registry"
	"github.com/matzehuels/units/pkg/store"
)

// Defaults used when the corresponding Config field is empty.
const (
	DefaultDatabase   = "units"
	DefaultCollection = "definitions"
)

// Config configures the MongoDB connection.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Store is a [store.Store] backed by a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type document struct {
	Symbol      string         `bson:"_id"`
	Name        string         `bson:"name"`
	Dimension   map[string]int `bson:"dimension,omitempty"`
	Coefficient float64        `bson:"coefficient,omitempty"`
	Constant    float64        `bson:"constant,omitempty"`
	Of          string         `bson:"of,omitempty"`
	Aliases     []string       `bson:"aliases,omitempty"`
	UpdatedAt   time.Time      `bson:"updated_at"`
}

func toDocument(def registry.Definition) document {
	return document{
		Symbol:      def.Symbol,
		Name:        def.Name,
		Dimension:   def.Dimension,
		Coefficient: def.Coefficient,
		Constant:    def.Constant,
		Of:          def.Of,
		Aliases:     def.Aliases,
		UpdatedAt:   time.Now().UTC(),
	}
}

func (d document) definition() registry.Definition {
	return registry.Definition{
		Name:        d.Name,
		Symbol:      d.Symbol,
		Dimension:   d.Dimension,
		Coefficient: d.Coefficient,
		Constant:    d.Constant,
		Of:          d.Of,
		Aliases:     d.Aliases,
	}
}

// NewStore connects to MongoDB and verifies the connection, retrying
// transient failures.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "configure mongo client")
	}

	err = store.Ping(ctx, "mongo", func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *Store) List(ctx context.Context) ([]registry.Definition, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "list definitions")
	}
	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode definitions")
	}

	defs := make([]registry.Definition, len(docs))
	for i, d := range docs {
		defs[i] = d.definition()
	}
	return defs, nil
}

func (s *Store) Get(ctx context.Context, symbol string) (registry.Definition, error) {
	var d document
	err := s.coll.FindOne(ctx, bson.M{"_id": symbol}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return registry.Definition{}, store.NotFound(symbol)
	}
	if err != nil {
		return registry.Definition{}, errs.Wrap(errs.ErrCodeInternal, err, "get definition %q", symbol)
	}
	return d.definition(), nil
}

func (s *Store) Put(ctx context.Context, def registry.Definition) error {
	if err := store.ValidateKey(def); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": def.Symbol}, toDocument(def), options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "put definition %q", def.Symbol)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, symbol string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": symbol})
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "delete definition %q", symbol)
	}
	if res.DeletedCount == 0 {
		return store.NotFound(symbol)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ store.Store = (*Store)(nil)
