package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/cache"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
)

// Options tunes the API. Zero or negative values fall back to the defaults.
type Options struct {
	Policy                maintenance.Policy
	DefaultIntervalKm     int
	DefaultIntervalMonths int
	// Now returns the evaluation time; time.Now when nil. It is always
	// converted to UTC.
	Now func() time.Time
}

// API serves the fleet maintenance REST endpoints
type API struct {
	clients  db.ClientCollection
	trucks   db.TruckCollection
	services db.ServiceCollection
	cache    cache.StatusCache

	policy         maintenance.Policy
	intervalKm     int
	intervalMonths int
	now            func() time.Time
}

// NewAPI creates the API handlers. A nil status cache disables caching.
func NewAPI(clients db.ClientCollection, trucks db.TruckCollection, services db.ServiceCollection, statusCache cache.StatusCache, opts Options) *API {
	if statusCache == nil {
		statusCache = cache.NopStatusCache{}
	}
	defaults := maintenance.DefaultPolicy()
	if opts.Policy.WarningDays <= 0 {
		opts.Policy.WarningDays = defaults.WarningDays
	}
	if opts.Policy.WarningDistance <= 0 {
		opts.Policy.WarningDistance = defaults.WarningDistance
	}
	if opts.DefaultIntervalKm <= 0 {
		opts.DefaultIntervalKm = 10000
	}
	if opts.DefaultIntervalMonths <= 0 {
		opts.DefaultIntervalMonths = 6
	}
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	// Service dates are UTC midnights; evaluate on the UTC calendar too.
	now := func() time.Time { return clock().UTC() }
	return &API{
		clients:        clients,
		trucks:         trucks,
		services:       services,
		cache:          statusCache,
		policy:         opts.Policy,
		intervalKm:     opts.DefaultIntervalKm,
		intervalMonths: opts.DefaultIntervalMonths,
		now:            now,
	}
}

// Health reports that the process is serving
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   a.now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps a store error onto a response; what names the entity.
func writeStoreError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, db.ErrDuplicate):
		writeError(w, http.StatusConflict, what+" already exists")
	default:
		log.WithError(err).WithField("entity", what).Error("Store operation failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.New("Failed to read request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.New("Invalid JSON")
	}
	return nil
}
