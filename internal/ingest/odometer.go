// Package ingest applies odometer readings published by trucks over MQTT.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/cache"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// DefaultTopic matches the odometer topic of every truck.
const DefaultTopic = "fleet/trucks/+/odometer"

// OdometerReading is the payload of an odometer message. Exactly one of
// AddedKm (a trip distance) or Odometer (an absolute reading) is set.
type OdometerReading struct {
	AddedKm  *int `json:"addedKm,omitempty"`
	Odometer *int `json:"odometer,omitempty"`
}

// TopicFor returns the topic a truck publishes its odometer on.
func TopicFor(truckID string) string {
	return fmt.Sprintf("fleet/trucks/%s/odometer", truckID)
}

// TruckIDFromTopic extracts the truck id from a ".../{id}/odometer" topic.
func TruckIDFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 || parts[len(parts)-1] != "odometer" {
		return "", fmt.Errorf("unexpected topic %q", topic)
	}
	id := parts[len(parts)-2]
	if id == "" || id == "+" || id == "#" {
		return "", fmt.Errorf("topic %q has no truck id", topic)
	}
	return id, nil
}

// ParseReading decodes and validates an odometer payload.
func ParseReading(payload []byte) (OdometerReading, error) {
	var r OdometerReading
	if err := json.Unmarshal(payload, &r); err != nil {
		return OdometerReading{}, fmt.Errorf("invalid odometer payload: %w", err)
	}
	switch {
	case r.AddedKm == nil && r.Odometer == nil:
		return OdometerReading{}, errors.New("payload needs addedKm or odometer")
	case r.AddedKm != nil && r.Odometer != nil:
		return OdometerReading{}, errors.New("payload must not set both addedKm and odometer")
	case r.AddedKm != nil && *r.AddedKm < 0:
		return OdometerReading{}, errors.New("addedKm must be a non-negative number")
	case r.Odometer != nil && *r.Odometer < 0:
		return OdometerReading{}, errors.New("odometer must be a non-negative number")
	}
	return r, nil
}

// Handler applies odometer readings to the truck store.
type Handler struct {
	trucks db.TruckCollection
	cache  cache.StatusCache
}

// NewHandler creates a reading handler. A nil cache disables invalidation.
func NewHandler(trucks db.TruckCollection, statusCache cache.StatusCache) *Handler {
	if statusCache == nil {
		statusCache = cache.NopStatusCache{}
	}
	return &Handler{trucks: trucks, cache: statusCache}
}

// Apply updates the truck named by topic. Absolute readings never move the
// stored odometer backwards.
func (h *Handler) Apply(ctx context.Context, topic string, payload []byte) (*models.Truck, error) {
	truckID, err := TruckIDFromTopic(topic)
	if err != nil {
		return nil, err
	}
	reading, err := ParseReading(payload)
	if err != nil {
		return nil, err
	}

	var truck *models.Truck
	if reading.AddedKm != nil {
		truck, err = h.trucks.AddOdometer(ctx, truckID, *reading.AddedKm)
	} else {
		truck, err = h.trucks.RaiseOdometer(ctx, truckID, *reading.Odometer)
	}
	if err != nil {
		return nil, fmt.Errorf("update odometer of truck %s: %w", truckID, err)
	}

	if err := h.cache.Invalidate(ctx, truckID); err != nil {
		log.WithError(err).WithField("truck_id", truckID).Warn("Failed to invalidate cached status")
	}
	return truck, nil
}
