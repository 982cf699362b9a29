package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClientCollection implements ClientCollection for MongoDB
type MongoClientCollection struct {
	Collection *mongo.Collection
}

// InsertClient inserts a new client, assigning an ID when none is set
func (c *MongoClientCollection) InsertClient(ctx context.Context, client *models.Client) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	if client.Allocations == nil {
		client.Allocations = []string{}
	}
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	_, err := c.Collection.InsertOne(ctx, client)
	return translateError(err)
}

// FindClients returns all clients ordered by name
func (c *MongoClientCollection) FindClients(ctx context.Context) ([]models.Client, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	cursor, err := c.Collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	clients := []models.Client{}
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// FindClientByID finds a client by its ID
func (c *MongoClientCollection) FindClientByID(ctx context.Context, id string) (*models.Client, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	var client models.Client
	err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

// UpdateClient replaces a client's editable fields
func (c *MongoClientCollection) UpdateClient(ctx context.Context, id string, client models.Client) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	if client.Allocations == nil {
		client.Allocations = []string{}
	}
	update := bson.M{"$set": bson.M{
		"name":           client.Name,
		"contact_person": client.ContactPerson,
		"phone":          client.Phone,
		"allocations":    client.Allocations,
		"updated_at":     time.Now(),
	}}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient deletes a client. Callers remove the client's trucks first.
func (c *MongoClientCollection) DeleteClient(ctx context.Context, id string) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountClients returns the number of clients
func (c *MongoClientCollection) CountClients(ctx context.Context) (int64, error) {
	if c.Collection == nil {
		return 0, ErrNilCollection
	}
	return c.Collection.CountDocuments(ctx, bson.M{})
}
