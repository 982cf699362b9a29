package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ListServices returns service records newest first, optionally for ?truckId=
func (a *API) ListServices(w http.ResponseWriter, r *http.Request) {
	records, err := a.services.FindServices(r.Context(), r.URL.Query().Get("truckId"))
	if err != nil {
		writeStoreError(w, err, "Service record")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateService stores a service record and moves the truck's service
// anchors forward.
func (a *API) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var record models.ServiceRecord
	if err := decodeBody(r, &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.ValidateServiceRecord(&record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.trucks.FindTruckByID(ctx, record.TruckID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "truckId does not refer to a known truck")
			return
		}
		writeStoreError(w, err, "Truck")
		return
	}

	if record.TotalCost == 0 {
		record.TotalCost = record.ComputeTotal()
	}
	if err := a.services.InsertService(ctx, &record); err != nil {
		writeStoreError(w, err, "Service record")
		return
	}

	truck, err := a.trucks.ApplyService(ctx, record.TruckID, record)
	if err != nil {
		// The record must not outlive a failed anchor update.
		if delErr := a.services.DeleteService(ctx, record.ID); delErr != nil {
			log.WithError(delErr).WithField("service_id", record.ID).Error("Failed to remove service record after truck update failed")
		}
		writeStoreError(w, err, "Truck")
		return
	}
	a.invalidate(ctx, truck.ID)

	log.WithFields(log.Fields{
		"truck_id":        truck.ID,
		"service_id":      record.ID,
		"odometer":        truck.CurrentOdometer,
		"schedules_reset": maintenance.ResetSchedules(truck.Schedules, record.ServiceTypes),
	}).Info("Service recorded")
	writeJSON(w, http.StatusCreated, record)
}

// GetService returns one service record
func (a *API) GetService(w http.ResponseWriter, r *http.Request) {
	record, err := a.services.FindServiceByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err, "Service record")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteService removes a service record. The truck's anchors are left as they are.
func (a *API) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := a.services.DeleteService(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeStoreError(w, err, "Service record")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Service record deleted successfully"})
}
