package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// ListClients returns every client
func (a *API) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := a.clients.FindClients(r.Context())
	if err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// CreateClient stores a new client
func (a *API) CreateClient(w http.ResponseWriter, r *http.Request) {
	var client models.Client
	if err := decodeBody(r, &client); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.ValidateClient(&client); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if client.Allocations == nil {
		client.Allocations = []string{}
	}

	if err := a.clients.InsertClient(r.Context(), &client); err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// GetClient returns one client
func (a *API) GetClient(w http.ResponseWriter, r *http.Request) {
	client, err := a.clients.FindClientByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// UpdateClient replaces a client's editable fields
func (a *API) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var client models.Client
	if err := decodeBody(r, &client); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.ValidateClient(&client); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.clients.UpdateClient(r.Context(), id, client); err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	updated, err := a.clients.FindClientByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteClient removes a client together with its trucks and their service history
func (a *API) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	ctx := r.Context()

	if _, err := a.clients.FindClientByID(ctx, id); err != nil {
		writeStoreError(w, err, "Client")
		return
	}

	trucks, err := a.trucks.FindTrucksByClient(ctx, id)
	if err != nil {
		writeStoreError(w, err, "Truck")
		return
	}
	for _, truck := range trucks {
		if err := a.removeTruck(ctx, truck.ID); err != nil {
			writeStoreError(w, err, "Truck")
			return
		}
	}

	if err := a.clients.DeleteClient(ctx, id); err != nil {
		writeStoreError(w, err, "Client")
		return
	}
	log.WithFields(log.Fields{"client_id": id, "trucks": len(trucks)}).Info("Client deleted")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}
