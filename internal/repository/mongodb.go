// Package repository provides the MongoDB data access layer for the
// menu order service.
package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	MaxPoolSize            uint64
	MinPoolSize            uint64
	MaxConnIdleTime        time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	SocketTimeout          time.Duration
}

// DefaultMongoConfig returns production defaults for the connection pool.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client            *mongo.Client
	Database          *mongo.Database
	Products          *mongo.Collection
	AgeGroups         *mongo.Collection
	ProductQuantities *mongo.Collection
	Recipes           *mongo.Collection
	Days              *mongo.Collection
	Orders            *mongo.Collection
	counters          *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:            client,
		Database:          db,
		Products:          db.Collection("products"),
		AgeGroups:         db.Collection("age_groups"),
		ProductQuantities: db.Collection("product_quantities"),
		Recipes:           db.Collection("recipes"),
		Days:              db.Collection("days"),
		Orders:            db.Collection("orders"),
		counters:          db.Collection("counters"),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates the unique-name indexes the catalog relies on.
// Errors for indexes that already exist are ignored.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	uniqueName := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, coll := range []*mongo.Collection{m.Products, m.AgeGroups, m.Recipes, m.Days} {
		_, _ = coll.Indexes().CreateOne(ctx, uniqueName)
	}

	// One quantity row per (product, unit, package, quantity) combination.
	quantityIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "product_id", Value: 1},
			{Key: "unit_of_measure", Value: 1},
			{Key: "package_type", Value: 1},
			{Key: "quantity", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	_, _ = m.ProductQuantities.Indexes().CreateOne(ctx, quantityIndex)

	orderDateIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}, {Key: "name", Value: 1}},
	}
	_, _ = m.Orders.Indexes().CreateOne(ctx, orderDateIndex)

	return nil
}

// NextID returns the next value of the named int64 sequence. Sequences
// back the integer identifiers exposed by the API, one counter document
// per collection.
func (m *MongoDB) NextID(ctx context.Context, sequence string) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := m.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
