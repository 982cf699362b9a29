package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// TruckStatusResponse is the full maintenance picture of one truck.
type TruckStatusResponse struct {
	TruckID     string `json:"truckId"`
	PlateNumber string `json:"plateNumber"`
	maintenance.DetailedStatus
	NeedsAttention bool                  `json:"needsAttention"`
	EstimatedCost  maintenance.CostRange `json:"estimatedCost"`
	EvaluatedAt    time.Time             `json:"evaluatedAt"`
}

// applyTruckDefaults fills the general interval and anchors a caller left
// out. A truck without a last service is anchored at registration: today's
// date and its current odometer. Schedules without an anchor inherit the
// general one.
func (a *API) applyTruckDefaults(t *models.Truck) {
	if t.ServiceIntervalKm == 0 {
		t.ServiceIntervalKm = a.intervalKm
	}
	if t.ServiceIntervalMonths == 0 {
		t.ServiceIntervalMonths = a.intervalMonths
	}
	if t.LastServiceDate == "" {
		t.LastServiceDate = maintenance.FormatDate(a.now())
		if t.LastServiceOdometer == 0 {
			t.LastServiceOdometer = t.CurrentOdometer
		}
	}
	if t.Schedules == nil {
		t.Schedules = []models.ServiceSchedule{}
	}
	for i := range t.Schedules {
		sch := &t.Schedules[i]
		if sch.LastServiceDate == "" {
			sch.LastServiceDate = t.LastServiceDate
			if sch.LastServiceOdometer == 0 {
				sch.LastServiceOdometer = t.LastServiceOdometer
			}
		}
	}
}

// checkClient reports whether the truck's client exists. It writes the
// response itself when it returns false.
func (a *API) checkClient(ctx context.Context, w http.ResponseWriter, clientID string) bool {
	if _, err := a.clients.FindClientByID(ctx, clientID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "clientId does not refer to a known client")
			return false
		}
		writeStoreError(w, err, "Client")
		return false
	}
	return true
}

// ListTrucks returns every truck, or the trucks of ?clientId=
func (a *API) ListTrucks(w http.ResponseWriter, r *http.Request) {
	var (
		trucks []models.Truck
		err    error
	)
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		trucks, err = a.trucks.FindTrucksByClient(r.Context(), clientID)
	} else {
		trucks, err = a.trucks.FindTrucks(r.Context())
	}
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}

// CreateTruck registers a truck with its schedules
func (a *API) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var truck models.Truck
	if err := decodeBody(r, &truck); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.applyTruckDefaults(&truck)
	if err := models.ValidateTruck(&truck); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !a.checkClient(r.Context(), w, truck.ClientID) {
		return
	}

	if err := a.trucks.InsertTruck(r.Context(), &truck); err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	log.WithFields(log.Fields{"truck_id": truck.ID, "plate": truck.PlateNumber}).Info("Truck registered")
	writeJSON(w, http.StatusCreated, truck)
}

// GetTruck returns one truck
func (a *API) GetTruck(w http.ResponseWriter, r *http.Request) {
	truck, err := a.trucks.FindTruckByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	writeJSON(w, http.StatusOK, truck)
}

// UpdateTruck applies a partial update: fields missing from the body keep
// their stored values, and schedules are replaced only when the body carries
// a schedules array. An empty last service date keeps the stored anchors.
func (a *API) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	existing, err := a.trucks.FindTruckByID(ctx, id)
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}

	truck := *existing
	// Decoded into a fresh slice so stored schedules never leak into sent ones.
	truck.Schedules = nil
	if err := decodeBody(r, &truck); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	truck.ID = id
	if truck.Schedules == nil {
		truck.Schedules = existing.Schedules
	}
	if truck.LastServiceDate == "" {
		truck.LastServiceDate = existing.LastServiceDate
		if truck.LastServiceOdometer == 0 {
			truck.LastServiceOdometer = existing.LastServiceOdometer
		}
	}
	a.applyTruckDefaults(&truck)
	if err := models.ValidateTruck(&truck); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if truck.ClientID != existing.ClientID && !a.checkClient(ctx, w, truck.ClientID) {
		return
	}

	if err := a.trucks.UpdateTruck(ctx, id, truck); err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	a.invalidate(ctx, id)

	updated, err := a.trucks.FindTruckByID(ctx, id)
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTruck removes a truck and its service history
func (a *API) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := a.removeTruck(r.Context(), id); err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Truck deleted successfully"})
}

func (a *API) removeTruck(ctx context.Context, id string) error {
	if err := a.trucks.DeleteTruck(ctx, id); err != nil {
		return err
	}
	removed, err := a.services.DeleteServicesByTruck(ctx, id)
	if err != nil {
		return err
	}
	a.invalidate(ctx, id)
	log.WithFields(log.Fields{"truck_id": id, "service_records": removed}).Info("Truck deleted")
	return nil
}

// UpdateOdometer adds a trip distance to the truck's odometer
func (a *API) UpdateOdometer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var update models.OdometerUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if update.AddedKm < 0 {
		writeError(w, http.StatusBadRequest, "addedKm must be a non-negative number")
		return
	}

	truck, err := a.trucks.AddOdometer(r.Context(), id, update.AddedKm)
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	a.invalidate(r.Context(), id)
	writeJSON(w, http.StatusOK, truck)
}

// GetTruckStatus evaluates every interval of one truck
func (a *API) GetTruckStatus(w http.ResponseWriter, r *http.Request) {
	truck, err := a.trucks.FindTruckByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}

	snap, err := maintenance.SnapshotFromTruck(*truck)
	if err != nil {
		log.WithError(err).WithField("truck_id", truck.ID).Error("Stored truck cannot be evaluated")
		writeError(w, http.StatusInternalServerError, "Truck has invalid service data")
		return
	}

	now := a.now()
	detail := a.policy.Detail(snap, now)
	writeJSON(w, http.StatusOK, TruckStatusResponse{
		TruckID:        truck.ID,
		PlateNumber:    truck.PlateNumber,
		DetailedStatus: detail,
		NeedsAttention: detail.Aggregate.NeedsAttention(now),
		EstimatedCost:  maintenance.EstimateCost(truck.Size, detail.ItemsDue),
		EvaluatedAt:    now,
	})
}

func (a *API) invalidate(ctx context.Context, truckID string) {
	if err := a.cache.Invalidate(ctx, truckID); err != nil {
		log.WithError(err).WithField("truck_id", truckID).Warn("Failed to invalidate cached status")
	}
}
