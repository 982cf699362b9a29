package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrNilCollection = errors.New("mongo collection is nil")
)

// Collection names
const (
	ClientsCollection  = "clients"
	TrucksCollection   = "trucks"
	ServicesCollection = "service_records"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Store groups the collections of one database.
type Store struct {
	Clients  *MongoClientCollection
	Trucks   *MongoTruckCollection
	Services *MongoServiceCollection
}

// NewStore binds the collections of database.
func NewStore(database *mongo.Database) *Store {
	return &Store{
		Clients:  &MongoClientCollection{Collection: database.Collection(ClientsCollection)},
		Trucks:   &MongoTruckCollection{Collection: database.Collection(TrucksCollection)},
		Services: &MongoServiceCollection{Collection: database.Collection(ServicesCollection)},
	}
}

// EnsureIndexes creates the indexes the queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if s.Trucks.Collection == nil || s.Services.Collection == nil {
		return ErrNilCollection
	}
	_, err := s.Trucks.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "plate_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create truck indexes: %w", err)
	}
	_, err = s.Services.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "truck_id", Value: 1}, {Key: "service_date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create service record indexes: %w", err)
	}
	return nil
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
