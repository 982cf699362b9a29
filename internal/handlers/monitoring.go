package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/cache"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// Monitoring filters
const (
	FilterAttention = "attention"
	FilterAll       = "all"
)

// DashboardSummary holds the fleet-wide totals.
type DashboardSummary struct {
	TotalTrucks      int     `json:"totalTrucks"`
	TotalClients     int64   `json:"totalClients"`
	Overdue          int     `json:"overdue"`
	Warning          int     `json:"warning"`
	OK               int     `json:"ok"`
	NeedsAttention   int     `json:"needsAttention"`
	TotalServiceCost float64 `json:"totalServiceCost"`
}

// truckStatus returns the aggregate view of a truck, served from the cache
// while the cached entry was computed for the same odometer on the same UTC day.
func (a *API) truckStatus(ctx context.Context, truck models.Truck, now time.Time) (cache.TruckStatus, error) {
	cached, err := a.cache.Get(ctx, truck.ID)
	if err != nil {
		log.WithError(err).WithField("truck_id", truck.ID).Warn("Status cache read failed")
	}
	if cached != nil && cached.CurrentOdometer == truck.CurrentOdometer &&
		maintenance.FormatDate(cached.EvaluatedAt.UTC()) == maintenance.FormatDate(now.UTC()) {
		return *cached, nil
	}

	snap, err := maintenance.SnapshotFromTruck(truck)
	if err != nil {
		return cache.TruckStatus{}, err
	}
	agg := a.policy.Aggregate(snap, now)
	status := cache.TruckStatus{
		TruckID:         truck.ID,
		PlateNumber:     truck.PlateNumber,
		Brand:           truck.Brand,
		Model:           truck.Model,
		ClientID:        truck.ClientID,
		CurrentOdometer: truck.CurrentOdometer,
		Aggregate:       agg,
		NeedsAttention:  agg.NeedsAttention(now),
		EstimatedCost:   maintenance.EstimateCost(truck.Size, agg.ItemsDue),
		EvaluatedAt:     now,
	}
	if err := a.cache.Set(ctx, status); err != nil {
		log.WithError(err).WithField("truck_id", truck.ID).Warn("Status cache write failed")
	}
	return status, nil
}

// fleetStatus evaluates every truck. Trucks whose stored data cannot be
// evaluated are logged and skipped.
func (a *API) fleetStatus(ctx context.Context) ([]cache.TruckStatus, error) {
	trucks, err := a.trucks.FindTrucks(ctx)
	if err != nil {
		return nil, err
	}
	now := a.now()
	statuses := make([]cache.TruckStatus, 0, len(trucks))
	for _, truck := range trucks {
		status, err := a.truckStatus(ctx, truck, now)
		if err != nil {
			log.WithError(err).WithField("truck_id", truck.ID).Error("Skipping truck with invalid service data")
			continue
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func matchesFilter(s cache.TruckStatus, filter string) bool {
	switch filter {
	case FilterAll:
		return true
	case FilterAttention:
		return s.NeedsAttention
	}
	want, err := maintenance.ParseStatus(filter)
	return err == nil && s.Aggregate.Status == want
}

// Monitoring lists trucks by maintenance urgency, most urgent first.
// ?filter= selects attention (default), overdue, warning, ok or all.
func (a *API) Monitoring(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = FilterAttention
	}
	if filter != FilterAll && filter != FilterAttention {
		if _, err := maintenance.ParseStatus(filter); err != nil {
			writeError(w, http.StatusBadRequest, "filter must be one of attention, overdue, warning, ok, all")
			return
		}
	}

	statuses, err := a.fleetStatus(r.Context())
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}

	result := make([]cache.TruckStatus, 0, len(statuses))
	for _, s := range statuses {
		if matchesFilter(s, filter) {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Aggregate.Status != result[j].Aggregate.Status {
			return result[i].Aggregate.Status > result[j].Aggregate.Status
		}
		return result[i].Aggregate.NearestDate.Before(result[j].Aggregate.NearestDate)
	})
	writeJSON(w, http.StatusOK, result)
}

// Dashboard returns fleet totals
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statuses, err := a.fleetStatus(ctx)
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	clients, err := a.clients.CountClients(ctx)
	if err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	cost, err := a.services.TotalCost(ctx)
	if err != nil {
		writeStoreError(w, err, "Service record")
		return
	}

	summary := DashboardSummary{
		TotalTrucks:      len(statuses),
		TotalClients:     clients,
		TotalServiceCost: cost,
	}
	for _, s := range statuses {
		switch s.Aggregate.Status {
		case maintenance.StatusOverdue:
			summary.Overdue++
		case maintenance.StatusWarning:
			summary.Warning++
		default:
			summary.OK++
		}
		if s.NeedsAttention {
			summary.NeedsAttention++
		}
	}
	writeJSON(w, http.StatusOK, summary)
}
