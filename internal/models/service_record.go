package models

import (
	"time"
)

// ServiceRecord represents one workshop visit of a truck.
type ServiceRecord struct {
	ID           string      `json:"id" bson:"_id"`
	TruckID      string      `json:"truckId" bson:"truck_id"`
	ServiceDate  string      `json:"serviceDate" bson:"service_date"` // YYYY-MM-DD
	Odometer     int         `json:"odometer" bson:"odometer"`        // in kilometers
	ServiceTypes []string    `json:"serviceTypes" bson:"service_types"` // "Oil Change", "Brake System", "Tire Change", "Regular", ...
	Description  string      `json:"description" bson:"description"`
	Parts        []SparePart `json:"parts" bson:"parts"`
	LaborCost    float64     `json:"laborCost" bson:"labor_cost"`
	TotalCost    float64     `json:"totalCost" bson:"total_cost"`
	Mechanic     string      `json:"mechanic" bson:"mechanic"`
	CreatedAt    time.Time   `json:"createdAt" bson:"created_at"`
}

// SparePart is a part consumed by a service record.
type SparePart struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name" bson:"name"`
	PartNumber string  `json:"partNumber" bson:"part_number"`
	Price      float64 `json:"price" bson:"price"`
	Quantity   int     `json:"quantity" bson:"quantity"`
}

// PartsCost sums price times quantity over all parts.
func (r *ServiceRecord) PartsCost() float64 {
	var total float64
	for _, p := range r.Parts {
		total += p.Price * float64(p.Quantity)
	}
	return total
}

// ComputeTotal returns labor plus parts cost.
func (r *ServiceRecord) ComputeTotal() float64 {
	return r.LaborCost + r.PartsCost()
}
