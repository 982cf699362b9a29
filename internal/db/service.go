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

// MongoServiceCollection implements ServiceCollection for MongoDB
type MongoServiceCollection struct {
	Collection *mongo.Collection
}

// InsertService inserts a service record with its spare parts
func (c *MongoServiceCollection) InsertService(ctx context.Context, record *models.ServiceRecord) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Parts == nil {
		record.Parts = []models.SparePart{}
	}
	for i := range record.Parts {
		if record.Parts[i].ID == "" {
			record.Parts[i].ID = uuid.NewString()
		}
	}
	record.CreatedAt = time.Now()

	_, err := c.Collection.InsertOne(ctx, record)
	return translateError(err)
}

// FindServices returns service records, newest first. An empty truckID
// returns the records of every truck.
func (c *MongoServiceCollection) FindServices(ctx context.Context, truckID string) ([]models.ServiceRecord, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	filter := bson.M{}
	if truckID != "" {
		filter["truck_id"] = truckID
	}
	opts := options.Find().SetSort(bson.D{{Key: "service_date", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.ServiceRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FindServiceByID finds a service record by its ID
func (c *MongoServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.ServiceRecord, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	var record models.ServiceRecord
	if err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, translateError(err)
	}
	return &record, nil
}

// DeleteService deletes a service record and its parts
func (c *MongoServiceCollection) DeleteService(ctx context.Context, id string) error {
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

// DeleteServicesByTruck removes every record of a truck
func (c *MongoServiceCollection) DeleteServicesByTruck(ctx context.Context, truckID string) (int64, error) {
	if c.Collection == nil {
		return 0, ErrNilCollection
	}
	result, err := c.Collection.DeleteMany(ctx, bson.M{"truck_id": truckID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// TotalCost sums total_cost over all service records
func (c *MongoServiceCollection) TotalCost(ctx context.Context) (float64, error) {
	if c.Collection == nil {
		return 0, ErrNilCollection
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$total_cost"}}},
		}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
