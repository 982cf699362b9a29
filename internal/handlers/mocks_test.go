package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/fleet-maintenance/internal/cache"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// MockClientCollection is a mock implementation of ClientCollection
type MockClientCollection struct {
	mock.Mock
}

func (m *MockClientCollection) InsertClient(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientCollection) FindClients(ctx context.Context) ([]models.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Client), args.Error(1)
}

func (m *MockClientCollection) FindClientByID(ctx context.Context, id string) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientCollection) UpdateClient(ctx context.Context, id string, client models.Client) error {
	args := m.Called(ctx, id, client)
	return args.Error(0)
}

func (m *MockClientCollection) DeleteClient(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientCollection) CountClients(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTruckCollection is a mock implementation of TruckCollection
type MockTruckCollection struct {
	mock.Mock
}

func (m *MockTruckCollection) InsertTruck(ctx context.Context, truck *models.Truck) error {
	args := m.Called(ctx, truck)
	return args.Error(0)
}

func (m *MockTruckCollection) FindTrucks(ctx context.Context) ([]models.Truck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTrucksByClient(ctx context.Context, clientID string) ([]models.Truck, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) UpdateTruck(ctx context.Context, id string, truck models.Truck) error {
	args := m.Called(ctx, id, truck)
	return args.Error(0)
}

func (m *MockTruckCollection) AddOdometer(ctx context.Context, id string, addedKm int) (*models.Truck, error) {
	args := m.Called(ctx, id, addedKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) RaiseOdometer(ctx context.Context, id string, odometer int) (*models.Truck, error) {
	args := m.Called(ctx, id, odometer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) ApplyService(ctx context.Context, id string, rec models.ServiceRecord) (*models.Truck, error) {
	args := m.Called(ctx, id, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockServiceCollection is a mock implementation of ServiceCollection
type MockServiceCollection struct {
	mock.Mock
}

func (m *MockServiceCollection) InsertService(ctx context.Context, record *models.ServiceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockServiceCollection) FindServices(ctx context.Context, truckID string) ([]models.ServiceRecord, error) {
	args := m.Called(ctx, truckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ServiceRecord), args.Error(1)
}

func (m *MockServiceCollection) FindServiceByID(ctx context.Context, id string) (*models.ServiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceRecord), args.Error(1)
}

func (m *MockServiceCollection) DeleteService(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockServiceCollection) DeleteServicesByTruck(ctx context.Context, truckID string) (int64, error) {
	args := m.Called(ctx, truckID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockServiceCollection) TotalCost(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// MockStatusCache is a mock implementation of StatusCache
type MockStatusCache struct {
	mock.Mock
}

func (m *MockStatusCache) Get(ctx context.Context, truckID string) (*cache.TruckStatus, error) {
	args := m.Called(ctx, truckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.TruckStatus), args.Error(1)
}

func (m *MockStatusCache) Set(ctx context.Context, status cache.TruckStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusCache) Invalidate(ctx context.Context, truckID string) error {
	args := m.Called(ctx, truckID)
	return args.Error(0)
}

// fixedNow is the evaluation time used by every handler test.
var fixedNow = time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)

type testDeps struct {
	clients  *MockClientCollection
	trucks   *MockTruckCollection
	services *MockServiceCollection
}

func newTestDeps() testDeps {
	return testDeps{
		clients:  new(MockClientCollection),
		trucks:   new(MockTruckCollection),
		services: new(MockServiceCollection),
	}
}

func (d testDeps) api(statusCache cache.StatusCache) *API {
	return NewAPI(d.clients, d.trucks, d.services, statusCache, Options{
		Now: func() time.Time { return fixedNow },
	})
}

func (d testDeps) assertExpectations(t mock.TestingT) {
	d.clients.AssertExpectations(t)
	d.trucks.AssertExpectations(t)
	d.services.AssertExpectations(t)
}

// overdueTruck is past its six-month general interval on fixedNow.
func overdueTruck() models.Truck {
	return models.Truck{
		ID: "t1", PlateNumber: "B 9044 JXS", Brand: "Hino", Model: "Ranger", Year: 2019,
		Size: models.TruckBig, Tonnage: 20, ClientID: "c1",
		CurrentOdometer: 152000, LastServiceDate: "2023-10-15", LastServiceOdometer: 140000,
		ServiceIntervalKm: 10000, ServiceIntervalMonths: 6,
		Schedules: []models.ServiceSchedule{
			{ID: "s1", ServiceName: "Ganti Oli", IntervalKm: 10000, IntervalMonths: 6, LastServiceDate: "2024-01-20", LastServiceOdometer: 148000},
		},
	}
}

// warningTruck is nine days from its general due date on fixedNow.
func warningTruck() models.Truck {
	return models.Truck{
		ID: "t2", PlateNumber: "B 9112 KLO", Brand: "Mitsubishi", Model: "Fuso", Year: 2021,
		Size: models.TruckSmall, Tonnage: 8, ClientID: "c1",
		CurrentOdometer: 85000, LastServiceDate: "2024-01-10", LastServiceOdometer: 80000,
		ServiceIntervalKm: 10000, ServiceIntervalMonths: 6,
		Schedules: []models.ServiceSchedule{},
	}
}

// okTruck is comfortably inside every interval on fixedNow.
func okTruck() models.Truck {
	return models.Truck{
		ID: "t3", PlateNumber: "B 9555 TRE", Brand: "Isuzu", Model: "Giga", Year: 2023,
		Size: models.TruckBig, Tonnage: 15, ClientID: "c2",
		CurrentOdometer: 21000, LastServiceDate: "2024-05-20", LastServiceOdometer: 20000,
		ServiceIntervalKm: 10000, ServiceIntervalMonths: 6,
		Schedules: []models.ServiceSchedule{},
	}
}
