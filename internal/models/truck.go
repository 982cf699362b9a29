package models

import (
	"time"
)

// TruckSize is the weight class of a truck. It selects the cost table used
// for service estimates.
type TruckSize string

const (
	TruckSmall TruckSize = "Small"
	TruckBig   TruckSize = "Big"
)

// IsValidTruckSize checks if a size is one of the known classes
func IsValidTruckSize(size TruckSize) bool {
	switch size {
	case TruckSmall, TruckBig:
		return true
	default:
		return false
	}
}

// Truck represents a fleet truck together with its general service interval
// and any per-item schedules.
type Truck struct {
	ID            string    `bson:"_id" json:"id"`
	PlateNumber   string    `bson:"plate_number" json:"plateNumber"`
	Brand         string    `bson:"brand" json:"brand"`
	Model         string    `bson:"model" json:"model"`
	Year          int       `bson:"year" json:"year"`
	Size          TruckSize `bson:"size" json:"size"`
	Tonnage       float64   `bson:"tonnage" json:"tonnage"`
	ClientID      string    `bson:"client_id" json:"clientId"`
	Allocation    string    `bson:"allocation,omitempty" json:"allocation,omitempty"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	EngineNumber  string    `bson:"engine_number,omitempty" json:"engineNumber,omitempty"`
	ChassisNumber string    `bson:"chassis_number,omitempty" json:"chassisNumber,omitempty"`

	CurrentOdometer int `bson:"current_odometer" json:"currentOdometer"`

	// General service interval
	LastServiceDate       string `bson:"last_service_date" json:"lastServiceDate"` // YYYY-MM-DD
	LastServiceOdometer   int    `bson:"last_service_odometer" json:"lastServiceOdometer"`
	ServiceIntervalKm     int    `bson:"service_interval_km" json:"serviceIntervalKm"`
	ServiceIntervalMonths int    `bson:"service_interval_months" json:"serviceIntervalMonths"`

	Schedules []ServiceSchedule `bson:"schedules" json:"schedules"`

	// Vehicle documents, YYYY-MM-DD
	StnkExpiry     string `bson:"stnk_expiry,omitempty" json:"stnkExpiry,omitempty"`
	Tax5YearExpiry string `bson:"tax_5year_expiry,omitempty" json:"tax5yearExpiry,omitempty"`
	KirExpiry      string `bson:"kir_expiry,omitempty" json:"kirExpiry,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ServiceSchedule is a per-item maintenance interval attached to a truck,
// e.g. "Oil Change" every 10000 km or 6 months.
type ServiceSchedule struct {
	ID                  string `bson:"id" json:"id"`
	ServiceName         string `bson:"service_name" json:"serviceName"`
	IntervalKm          int    `bson:"interval_km" json:"intervalKm"`
	IntervalMonths      int    `bson:"interval_months" json:"intervalMonths"`
	LastServiceDate     string `bson:"last_service_date" json:"lastServiceDate"` // YYYY-MM-DD
	LastServiceOdometer int    `bson:"last_service_odometer" json:"lastServiceOdometer"`
}

// Client is a customer the trucks are allocated to.
type Client struct {
	ID            string    `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	ContactPerson string    `bson:"contact_person" json:"contactPerson"`
	Phone         string    `bson:"phone" json:"phone"`
	Allocations   []string  `bson:"allocations" json:"allocations"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updatedAt"`
}

// OdometerUpdate is the body of an odometer increment request.
type OdometerUpdate struct {
	AddedKm int `json:"addedKm"`
}
