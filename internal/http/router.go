package http

import (
	"registru-backend/internal/handlers"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	importHandler *handlers.ImportHandler,
	templateHandler *handlers.TemplateHandler,
	yearHandler *handlers.YearHandler,
	lookupHandler *handlers.LookupHandler,
	entryHandler *handlers.EntryHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Registry years
	yearsAPI := r.PathPrefix("/api/years").Subrouter()
	yearsAPI.HandleFunc("", yearHandler.ListYears).Methods("GET")
	yearsAPI.HandleFunc("", yearHandler.CreateYear).Methods("POST")
	yearsAPI.HandleFunc("/{id}/activate", yearHandler.ActivateYear).Methods("POST")

	// Import templates
	templatesAPI := r.PathPrefix("/api/templates").Subrouter()
	templatesAPI.HandleFunc("", templateHandler.ListTemplates).Methods("GET")
	templatesAPI.HandleFunc("", templateHandler.CreateTemplate).Methods("POST")
	templatesAPI.HandleFunc("/{id}", templateHandler.GetTemplate).Methods("GET")
	templatesAPI.HandleFunc("/{id}", templateHandler.UpdateTemplate).Methods("PUT")
	templatesAPI.HandleFunc("/{id}", templateHandler.DeleteTemplate).Methods("DELETE")

	// Import flow
	importAPI := r.PathPrefix("/api/import").Subrouter()
	importAPI.HandleFunc("/preview", importHandler.Preview).Methods("POST")
	importAPI.HandleFunc("/confirm", importHandler.Confirm).Methods("POST")

	// Lookup tables
	lookupsAPI := r.PathPrefix("/api/lookups").Subrouter()
	lookupsAPI.HandleFunc("/sync", lookupHandler.Sync).Methods("POST")
	lookupsAPI.HandleFunc("/container-types", lookupHandler.ListContainerTypes).Methods("GET")
	lookupsAPI.HandleFunc("/ships", lookupHandler.ListShips).Methods("GET")
	lookupsAPI.HandleFunc("/flags", lookupHandler.ListFlags).Methods("GET")

	// Registry entries
	r.HandleFunc("/api/entries", entryHandler.ListEntries).Methods("GET")

	return r
}
