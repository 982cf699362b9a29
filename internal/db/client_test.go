package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

func TestMongoClientCollection_CRUD(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	client := &models.Client{Name: "PT Mayora Indah", ContactPerson: "Rudi Hartono", Phone: "021-555003"}
	require.NoError(t, store.Clients.InsertClient(ctx, client))
	assert.NotEmpty(t, client.ID)
	assert.NotZero(t, client.CreatedAt)

	found, err := store.Clients.FindClientByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rudi Hartono", found.ContactPerson)

	found.Phone = "021-999999"
	require.NoError(t, store.Clients.UpdateClient(ctx, client.ID, *found))

	all, err := store.Clients.FindClients(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "021-999999", all[0].Phone)

	count, err := store.Clients.CountClients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Clients.DeleteClient(ctx, client.ID))
	_, err = store.Clients.FindClientByID(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Clients.DeleteClient(ctx, client.ID), ErrNotFound)
}

func TestMongoTruckCollection_Odometer(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	truck := &models.Truck{
		ID:                    "t4",
		PlateNumber:           "L 1234 AB",
		Brand:                 "Hino",
		Model:                 "Dutro",
		Year:                  2022,
		Size:                  models.TruckSmall,
		Tonnage:               4,
		ClientID:              "c3",
		CurrentOdometer:       25000,
		LastServiceDate:       "2024-04-10",
		LastServiceOdometer:   20000,
		ServiceIntervalKm:     5000,
		ServiceIntervalMonths: 3,
		Schedules:             []models.ServiceSchedule{{ServiceName: "Oil Change", IntervalKm: 5000, IntervalMonths: 3, LastServiceDate: "2024-04-10", LastServiceOdometer: 20000}},
	}
	require.NoError(t, store.Trucks.InsertTruck(ctx, truck))
	assert.NotEmpty(t, truck.Schedules[0].ID)

	dup := *truck
	dup.ID = "t5"
	assert.ErrorIs(t, store.Trucks.InsertTruck(ctx, &dup), ErrDuplicate)

	updated, err := store.Trucks.AddOdometer(ctx, "t4", 350)
	require.NoError(t, err)
	assert.Equal(t, 25350, updated.CurrentOdometer)

	updated, err = store.Trucks.RaiseOdometer(ctx, "t4", 25000)
	require.NoError(t, err)
	assert.Equal(t, 25350, updated.CurrentOdometer)

	updated, err = store.Trucks.RaiseOdometer(ctx, "t4", 26000)
	require.NoError(t, err)
	assert.Equal(t, 26000, updated.CurrentOdometer)

	_, err = store.Trucks.AddOdometer(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	byClient, err := store.Trucks.FindTrucksByClient(ctx, "c3")
	require.NoError(t, err)
	assert.Len(t, byClient, 1)
}

func TestMongoTruckCollection_ApplyService(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	truck := &models.Truck{
		ID:                    "t1",
		PlateNumber:           "B 9021 UYT",
		Brand:                 "Hino",
		Model:                 "Ranger",
		Size:                  models.TruckBig,
		ClientID:              "c1",
		CurrentOdometer:       152000,
		LastServiceDate:       "2023-10-15",
		LastServiceOdometer:   140000,
		ServiceIntervalKm:     10000,
		ServiceIntervalMonths: 6,
		Schedules: []models.ServiceSchedule{
			{ServiceName: "Ganti Oli", IntervalKm: 10000, IntervalMonths: 6, LastServiceDate: "2024-01-20", LastServiceOdometer: 148000},
			{ServiceName: "Tire Change", IntervalKm: 40000, IntervalMonths: 24, LastServiceDate: "2022-01-01", LastServiceOdometer: 110000},
			{ServiceName: " brake system", IntervalKm: 20000, IntervalMonths: 12, LastServiceDate: "2023-10-15", LastServiceOdometer: 140000},
		},
	}
	require.NoError(t, store.Trucks.InsertTruck(ctx, truck))

	// A trip lands between reading the truck and recording the service.
	stale, err := store.Trucks.FindTruckByID(ctx, "t1")
	require.NoError(t, err)
	_, err = store.Trucks.AddOdometer(ctx, "t1", 300)
	require.NoError(t, err)

	rec := models.ServiceRecord{TruckID: "t1", ServiceDate: "2024-06-30", Odometer: 152100, ServiceTypes: []string{"Oil Change", "Brake System"}}
	updated, err := store.Trucks.ApplyService(ctx, "t1", rec)
	require.NoError(t, err)

	assert.Equal(t, 152300, updated.CurrentOdometer, "the concurrent trip is kept")
	assert.Equal(t, "2024-06-30", updated.LastServiceDate)
	assert.Equal(t, 152100, updated.LastServiceOdometer)

	expected := *stale
	maintenance.ApplyServiceRecord(&expected, rec)
	for i, sch := range updated.Schedules {
		assert.Equal(t, expected.Schedules[i].LastServiceDate, sch.LastServiceDate, sch.ServiceName)
		assert.Equal(t, expected.Schedules[i].LastServiceOdometer, sch.LastServiceOdometer, sch.ServiceName)
	}
	assert.Equal(t, "2022-01-01", updated.Schedules[1].LastServiceDate)

	updated, err = store.Trucks.ApplyService(ctx, "t1", models.ServiceRecord{ServiceDate: "2024-07-02", Odometer: 153000})
	require.NoError(t, err)
	assert.Equal(t, 153000, updated.CurrentOdometer)
	assert.Equal(t, "2024-06-30", updated.Schedules[0].LastServiceDate)

	_, err = store.Trucks.ApplyService(ctx, "missing", rec)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoServiceCollection_TotalsAndCascade(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	for _, rec := range []*models.ServiceRecord{
		{TruckID: "t1", ServiceDate: "2023-10-15", Odometer: 140000, ServiceTypes: []string{"Regular"}, TotalCost: 2250000},
		{TruckID: "t1", ServiceDate: "2024-01-20", Odometer: 148000, ServiceTypes: []string{"Oil Change"}, TotalCost: 1000000},
		{TruckID: "t2", ServiceDate: "2024-01-20", Odometer: 80000, ServiceTypes: []string{"Brake System"}, TotalCost: 4150000},
	} {
		require.NoError(t, store.Services.InsertService(ctx, rec))
	}

	total, err := store.Services.TotalCost(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7400000.0, total)

	records, err := store.Services.FindServices(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-20", records[0].ServiceDate)

	deleted, err := store.Services.DeleteServicesByTruck(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	all, err := store.Services.FindServices(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
