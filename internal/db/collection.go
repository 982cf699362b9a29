package db

import (
	"context"

	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ClientCollection defines the interface for client data operations.
type ClientCollection interface {
	InsertClient(ctx context.Context, client *models.Client) error
	FindClients(ctx context.Context) ([]models.Client, error)
	FindClientByID(ctx context.Context, id string) (*models.Client, error)
	UpdateClient(ctx context.Context, id string, client models.Client) error
	DeleteClient(ctx context.Context, id string) error
	CountClients(ctx context.Context) (int64, error)
}

// TruckCollection defines the interface for truck data operations. Per-item
// schedules are stored inside the truck document.
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck *models.Truck) error
	FindTrucks(ctx context.Context) ([]models.Truck, error)
	FindTrucksByClient(ctx context.Context, clientID string) ([]models.Truck, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	UpdateTruck(ctx context.Context, id string, truck models.Truck) error
	AddOdometer(ctx context.Context, id string, addedKm int) (*models.Truck, error)
	RaiseOdometer(ctx context.Context, id string, odometer int) (*models.Truck, error)
	ApplyService(ctx context.Context, id string, rec models.ServiceRecord) (*models.Truck, error)
	DeleteTruck(ctx context.Context, id string) error
}

// ServiceCollection defines the interface for service record operations.
type ServiceCollection interface {
	InsertService(ctx context.Context, record *models.ServiceRecord) error
	FindServices(ctx context.Context, truckID string) ([]models.ServiceRecord, error)
	FindServiceByID(ctx context.Context, id string) (*models.ServiceRecord, error)
	DeleteService(ctx context.Context, id string) error
	DeleteServicesByTruck(ctx context.Context, truckID string) (int64, error)
	TotalCost(ctx context.Context) (float64, error)
}
