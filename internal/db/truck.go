package db

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTruckCollection implements TruckCollection for MongoDB
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

func assignScheduleIDs(truck *models.Truck) {
	if truck.Schedules == nil {
		truck.Schedules = []models.ServiceSchedule{}
	}
	for i := range truck.Schedules {
		if truck.Schedules[i].ID == "" {
			truck.Schedules[i].ID = uuid.NewString()
		}
	}
}

// InsertTruck inserts a truck with its schedules
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck *models.Truck) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	if truck.ID == "" {
		truck.ID = uuid.NewString()
	}
	assignScheduleIDs(truck)
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = truck.CreatedAt

	_, err := c.Collection.InsertOne(ctx, truck)
	return translateError(err)
}

func (c *MongoTruckCollection) findTrucks(ctx context.Context, filter bson.M) ([]models.Truck, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	opts := options.Find().SetSort(bson.D{{Key: "brand", Value: 1}, {Key: "plate_number", Value: 1}})
	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trucks := []models.Truck{}
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

// FindTrucks returns every truck ordered by brand
func (c *MongoTruckCollection) FindTrucks(ctx context.Context) ([]models.Truck, error) {
	return c.findTrucks(ctx, bson.M{})
}

// FindTrucksByClient returns the trucks allocated to a client
func (c *MongoTruckCollection) FindTrucksByClient(ctx context.Context, clientID string) ([]models.Truck, error) {
	return c.findTrucks(ctx, bson.M{"client_id": clientID})
}

// FindTruckByID finds a truck by its ID
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	var truck models.Truck
	if err := c.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&truck); err != nil {
		return nil, translateError(err)
	}
	return &truck, nil
}

// UpdateTruck replaces a truck document, keeping its ID and creation time.
// The schedules in truck replace the stored ones.
func (c *MongoTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	if c.Collection == nil {
		return ErrNilCollection
	}
	existing, err := c.FindTruckByID(ctx, id)
	if err != nil {
		return err
	}
	truck.ID = id
	truck.CreatedAt = existing.CreatedAt
	truck.UpdatedAt = time.Now()
	assignScheduleIDs(&truck)

	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": id}, truck)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// findAndUpdate applies update to one truck and returns the updated document.
func (c *MongoTruckCollection) findAndUpdate(ctx context.Context, id string, update bson.M, opts *options.FindOneAndUpdateOptions) (*models.Truck, error) {
	if c.Collection == nil {
		return nil, ErrNilCollection
	}
	if opts == nil {
		opts = options.FindOneAndUpdate()
	}
	opts.SetReturnDocument(options.After)
	var truck models.Truck
	err := c.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&truck)
	if err != nil {
		return nil, translateError(err)
	}
	return &truck, nil
}

// AddOdometer atomically adds a trip distance to the truck's odometer
func (c *MongoTruckCollection) AddOdometer(ctx context.Context, id string, addedKm int) (*models.Truck, error) {
	return c.findAndUpdate(ctx, id, bson.M{
		"$inc": bson.M{"current_odometer": addedKm},
		"$set": bson.M{"updated_at": time.Now()},
	}, nil)
}

// RaiseOdometer sets the odometer to an absolute reading unless the stored
// reading is already higher
func (c *MongoTruckCollection) RaiseOdometer(ctx context.Context, id string, odometer int) (*models.Truck, error) {
	return c.findAndUpdate(ctx, id, bson.M{
		"$max": bson.M{"current_odometer": odometer},
		"$set": bson.M{"updated_at": time.Now()},
	}, nil)
}

// ApplyService moves the truck's service anchors to rec in one update, so
// concurrent odometer increments are never overwritten: the general anchors
// are set, the odometer is raised with $max, and every schedule rec resets
// restarts at the record.
func (c *MongoTruckCollection) ApplyService(ctx context.Context, id string, rec models.ServiceRecord) (*models.Truck, error) {
	set := bson.M{
		"last_service_date":     rec.ServiceDate,
		"last_service_odometer": rec.Odometer,
		"updated_at":            time.Now(),
	}
	opts := options.FindOneAndUpdate()

	// An array filter that no update path uses is rejected by the server.
	if names := maintenance.ScheduleNamesReset(rec.ServiceTypes); len(names) > 0 {
		patterns := make(bson.A, 0, len(names))
		for _, name := range names {
			patterns = append(patterns, primitive.Regex{Pattern: `^\s*` + regexp.QuoteMeta(name) + `\s*$`, Options: "i"})
		}
		set["schedules.$[sch].last_service_date"] = rec.ServiceDate
		set["schedules.$[sch].last_service_odometer"] = rec.Odometer
		opts.SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"sch.service_name": bson.M{"$in": patterns}}},
		})
	}

	return c.findAndUpdate(ctx, id, bson.M{
		"$set": set,
		"$max": bson.M{"current_odometer": rec.Odometer},
	}, opts)
}

// DeleteTruck deletes a truck and, with it, its schedules
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
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
