package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(field, s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%s must be a YYYY-MM-DD date", field)
	}
	return nil
}

func validateOptionalDate(field, s string) error {
	if s == "" {
		return nil
	}
	return ValidateDate(field, s)
}

// ValidateClient validates the fields required to store a client
func ValidateClient(c *Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(c.ContactPerson) == "" {
		return errors.New("contactPerson is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return errors.New("phone is required")
	}
	return nil
}

// ValidateTruck validates a truck after defaults have been applied.
func ValidateTruck(t *Truck) error {
	if strings.TrimSpace(t.PlateNumber) == "" {
		return errors.New("plateNumber is required")
	}
	if strings.TrimSpace(t.Brand) == "" || strings.TrimSpace(t.Model) == "" {
		return errors.New("brand and model are required")
	}
	if t.Year <= 0 {
		return errors.New("year is required")
	}
	if !IsValidTruckSize(t.Size) {
		return fmt.Errorf("size must be %q or %q", TruckSmall, TruckBig)
	}
	if t.Tonnage <= 0 {
		return errors.New("tonnage must be positive")
	}
	if t.ClientID == "" {
		return errors.New("clientId is required")
	}
	if t.CurrentOdometer < 0 || t.LastServiceOdometer < 0 {
		return errors.New("odometer readings must not be negative")
	}
	if t.ServiceIntervalKm <= 0 || t.ServiceIntervalMonths <= 0 {
		return errors.New("service intervals must be positive")
	}
	if err := ValidateDate("lastServiceDate", t.LastServiceDate); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"stnkExpiry", t.StnkExpiry},
		{"tax5yearExpiry", t.Tax5YearExpiry},
		{"kirExpiry", t.KirExpiry},
	} {
		if err := validateOptionalDate(f.name, f.value); err != nil {
			return err
		}
	}
	for i := range t.Schedules {
		if err := ValidateSchedule(&t.Schedules[i]); err != nil {
			return fmt.Errorf("schedule %d: %w", i, err)
		}
	}
	return nil
}

// ValidateSchedule validates a per-item schedule
func ValidateSchedule(s *ServiceSchedule) error {
	if strings.TrimSpace(s.ServiceName) == "" {
		return errors.New("serviceName is required")
	}
	if s.IntervalKm <= 0 || s.IntervalMonths <= 0 {
		return errors.New("intervals must be positive")
	}
	if s.LastServiceOdometer < 0 {
		return errors.New("lastServiceOdometer must not be negative")
	}
	return ValidateDate("lastServiceDate", s.LastServiceDate)
}

// ValidateServiceRecord validates a service record before it is stored
func ValidateServiceRecord(r *ServiceRecord) error {
	if r.TruckID == "" {
		return errors.New("truckId is required")
	}
	if err := ValidateDate("serviceDate", r.ServiceDate); err != nil {
		return err
	}
	if r.Odometer <= 0 {
		return errors.New("odometer must be positive")
	}
	if len(r.ServiceTypes) == 0 {
		return errors.New("serviceTypes is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if strings.TrimSpace(r.Mechanic) == "" {
		return errors.New("mechanic is required")
	}
	if r.LaborCost < 0 || r.TotalCost < 0 {
		return errors.New("costs must not be negative")
	}
	for _, p := range r.Parts {
		if p.Name == "" {
			return errors.New("part name is required")
		}
		if p.Quantity <= 0 || p.Price < 0 {
			return fmt.Errorf("part %q has invalid price or quantity", p.Name)
		}
	}
	return nil
}
