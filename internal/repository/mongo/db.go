package mongo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection         = "users"
	conversationsCollection = "conversations"
	productsCollection      = "products"
	ordersCollection        = "orders"
	policiesCollection      = "policies"
)

// DB wraps the mongo client and database handle
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDB connects to MongoDB and verifies the connection
func NewDB(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(newRegistry())
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return &DB{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects from MongoDB
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping verifies the connection is alive
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

// Collection returns a handle to a named collection
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// EnsureIndexes creates the unique indexes the data model relies on
func (d *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		usersCollection:    {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		productsCollection: {Keys: bson.D{{Key: "sku", Value: 1}}, Options: unique},
		ordersCollection:   {Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: unique},
	}

	for name, model := range indexes {
		if _, err := d.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}

	conversationIdx := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}}}
	if _, err := d.Collection(conversationsCollection).Indexes().CreateOne(ctx, conversationIdx); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", conversationsCollection, err)
	}

	return nil
}

var tUUID = reflect.TypeOf(uuid.UUID{})

// uuidCodec stores uuid.UUID values as their canonical string form so that
// document IDs stay human-readable in the store.
type uuidCodec struct{}

func (uuidCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tUUID {
		return bsoncodec.ValueEncoderError{Name: "uuidCodec", Types: []reflect.Type{tUUID}, Received: val}
	}
	return vw.WriteString(val.Interface().(uuid.UUID).String())
}

func (uuidCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tUUID {
		return bsoncodec.ValueDecoderError{Name: "uuidCodec", Types: []reflect.Type{tUUID}, Received: val}
	}

	s, err := vr.ReadString()
	if err != nil {
		return err
	}

	parsed, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid uuid %q: %w", s, err)
	}

	val.Set(reflect.ValueOf(parsed))
	return nil
}

func newRegistry() *bsoncodec.Registry {
	registry := bson.NewRegistry()
	registry.RegisterTypeEncoder(tUUID, uuidCodec{})
	registry.RegisterTypeDecoder(tUUID, uuidCodec{})
	return registry
}
