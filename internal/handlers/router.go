package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint of the API.
func NewRouter(a *API) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", a.Health).Methods("GET")

	r.HandleFunc("/api/clients", a.ListClients).Methods("GET")
	r.HandleFunc("/api/clients", a.CreateClient).Methods("POST")
	r.HandleFunc("/api/clients/{id}", a.GetClient).Methods("GET")
	r.HandleFunc("/api/clients/{id}", a.UpdateClient).Methods("PUT")
	r.HandleFunc("/api/clients/{id}", a.DeleteClient).Methods("DELETE")

	r.HandleFunc("/api/trucks", a.ListTrucks).Methods("GET")
	r.HandleFunc("/api/trucks", a.CreateTruck).Methods("POST")
	r.HandleFunc("/api/trucks/{id}", a.GetTruck).Methods("GET")
	r.HandleFunc("/api/trucks/{id}", a.UpdateTruck).Methods("PUT")
	r.HandleFunc("/api/trucks/{id}", a.DeleteTruck).Methods("DELETE")
	r.HandleFunc("/api/trucks/{id}/odometer", a.UpdateOdometer).Methods("PUT")
	r.HandleFunc("/api/trucks/{id}/status", a.GetTruckStatus).Methods("GET")

	r.HandleFunc("/api/services", a.ListServices).Methods("GET")
	r.HandleFunc("/api/services", a.CreateService).Methods("POST")
	r.HandleFunc("/api/services/{id}", a.GetService).Methods("GET")
	r.HandleFunc("/api/services/{id}", a.DeleteService).Methods("DELETE")

	r.HandleFunc("/api/monitoring", a.Monitoring).Methods("GET")
	r.HandleFunc("/api/dashboard", a.Dashboard).Methods("GET")

	return r
}
