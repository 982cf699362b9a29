package main

import "github.com/ukydev/fleet-maintenance/internal/models"

// demoClients, demoTrucks and demoServices make up the demo fleet the
// simulator seeds into an empty deployment.
func demoClients() []models.Client {
	return []models.Client{
		{ID: "c1", Name: "PT Unilever Indonesia", ContactPerson: "Budi Santoso", Phone: "021-555001"},
		{ID: "c2", Name: "PT Indofood CBP", ContactPerson: "Siti Aminah", Phone: "021-555002"},
		{ID: "c3", Name: "PT Mayora Indah", ContactPerson: "Rudi Hartono", Phone: "021-555003"},
	}
}

func demoTrucks() []models.Truck {
	return []models.Truck{
		{
			ID: "t1", PlateNumber: "B 9021 UYT", Brand: "Hino", Model: "Ranger 500", Year: 2019,
			Size: models.TruckBig, Tonnage: 15, ClientID: "c1",
			CurrentOdometer: 145000, LastServiceDate: "2023-10-15", LastServiceOdometer: 140000,
			ServiceIntervalKm: 10000, ServiceIntervalMonths: 6,
			Schedules: []models.ServiceSchedule{
				{ID: "sch1", ServiceName: "Oil Change", IntervalKm: 10000, IntervalMonths: 6, LastServiceDate: "2023-10-15", LastServiceOdometer: 140000},
				{ID: "sch2", ServiceName: "Tire Change", IntervalKm: 40000, IntervalMonths: 24, LastServiceDate: "2022-01-01", LastServiceOdometer: 110000},
			},
		},
		{
			ID: "t2", PlateNumber: "B 9112 KLO", Brand: "Mitsubishi", Model: "Fuso Fighter", Year: 2020,
			Size: models.TruckBig, Tonnage: 8, ClientID: "c1",
			CurrentOdometer: 82000, LastServiceDate: "2024-01-20", LastServiceOdometer: 80000,
			ServiceIntervalKm: 10000, ServiceIntervalMonths: 6,
			Schedules: []models.ServiceSchedule{
				{ID: "sch3", ServiceName: "Oil Change", IntervalKm: 10000, IntervalMonths: 6, LastServiceDate: "2024-01-20", LastServiceOdometer: 80000},
				{ID: "sch4", ServiceName: "Brake System", IntervalKm: 20000, IntervalMonths: 12, LastServiceDate: "2024-01-20", LastServiceOdometer: 80000},
			},
		},
		{
			ID: "t3", PlateNumber: "D 8822 XA", Brand: "Isuzu", Model: "Elf NLR", Year: 2021,
			Size: models.TruckSmall, Tonnage: 3, ClientID: "c2",
			CurrentOdometer: 45000, LastServiceDate: "2024-03-01", LastServiceOdometer: 44000,
			ServiceIntervalKm: 5000, ServiceIntervalMonths: 3,
			Schedules: []models.ServiceSchedule{
				{ID: "sch5", ServiceName: "Regular", IntervalKm: 5000, IntervalMonths: 3, LastServiceDate: "2024-03-01", LastServiceOdometer: 44000},
			},
		},
		{
			ID: "t4", PlateNumber: "L 1234 AB", Brand: "Hino", Model: "Dutro", Year: 2022,
			Size: models.TruckSmall, Tonnage: 4, ClientID: "c3",
			CurrentOdometer: 25000, LastServiceDate: "2024-04-10", LastServiceOdometer: 20000,
			ServiceIntervalKm: 5000, ServiceIntervalMonths: 3,
			Schedules: []models.ServiceSchedule{},
		},
	}
}

func demoServices() []models.ServiceRecord {
	return []models.ServiceRecord{
		{
			ID: "s1", TruckID: "t1", ServiceDate: "2023-10-15", Odometer: 140000,
			ServiceTypes: []string{"Regular", "Oil Change"}, Description: "Ganti Oli dan Filter",
			Parts: []models.SparePart{
				{ID: "p1", Name: "Oli Mesin Drum", PartNumber: "OIL-001", Price: 1500000, Quantity: 1},
				{ID: "p2", Name: "Filter Oli", PartNumber: "FLT-001", Price: 250000, Quantity: 1},
			},
			LaborCost: 500000, TotalCost: 2250000, Mechanic: "Agus",
		},
		{
			ID: "s2", TruckID: "t2", ServiceDate: "2024-01-20", Odometer: 80000,
			ServiceTypes: []string{"Brake System", "Oil Change"}, Description: "Ganti Kampas Rem Depan Belakang",
			Parts: []models.SparePart{
				{ID: "p3", Name: "Kampas Rem Depan", PartNumber: "BRK-F-01", Price: 800000, Quantity: 2},
				{ID: "p4", Name: "Kampas Rem Belakang", PartNumber: "BRK-R-01", Price: 900000, Quantity: 2},
			},
			LaborCost: 750000, TotalCost: 4150000, Mechanic: "Budi",
		},
		{
			ID: "s3", TruckID: "t3", ServiceDate: "2024-03-01", Odometer: 44000,
			ServiceTypes: []string{"Regular", "Tune Up"}, Description: "Service Berkala Ringan",
			Parts: []models.SparePart{
				{ID: "p5", Name: "Oli Mesin Galon", PartNumber: "OIL-002", Price: 450000, Quantity: 2},
			},
			LaborCost: 300000, TotalCost: 1200000, Mechanic: "Joko",
		},
		{
			ID: "s4", TruckID: "t4", ServiceDate: "2024-04-10", Odometer: 20000,
			ServiceTypes: []string{"Tune Up", "Electrical"}, Description: "Tune up mesin dan cek kelistrikan",
			Parts: []models.SparePart{
				{ID: "p6", Name: "Busi Set", PartNumber: "SPK-001", Price: 150000, Quantity: 4},
			},
			LaborCost: 400000, TotalCost: 1000000, Mechanic: "Agus",
		},
	}
}
