package rest

import "net/http"

// Handlers bundles everything the router mounts.
type Handlers struct {
	Aspiration *AspirationHandler
	Catalog    *CatalogHandler
	Auth       *AuthHandler
	Health     *HealthHandler
}

// NewRouter mounts all REST routes on a ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/aspirations", h.Aspiration.Submit)
	mux.HandleFunc("GET /api/aspirations", h.Aspiration.List)
	mux.HandleFunc("GET /api/aspirations/track/{trackingId}", h.Aspiration.Track)
	mux.HandleFunc("PATCH /api/aspirations/{id}", h.Aspiration.StaffUpdate)
	mux.HandleFunc("POST /api/aspirations/{id}/responses", h.Aspiration.Respond)
	mux.HandleFunc("DELETE /api/aspirations/{id}", h.Aspiration.Delete)
	mux.HandleFunc("GET /api/stats", h.Aspiration.Stats)

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	mux.HandleFunc("GET /api/legislative", h.Catalog.ListLegislative)
	mux.HandleFunc("POST /api/legislative", h.Catalog.CreateLegislative)
	mux.HandleFunc("DELETE /api/legislative/{id}", h.Catalog.DeleteLegislative)
	mux.HandleFunc("GET /api/structure", h.Catalog.ListStructureMembers)
	mux.HandleFunc("POST /api/structure", h.Catalog.CreateStructureMember)
	mux.HandleFunc("DELETE /api/structure/{id}", h.Catalog.DeleteStructureMember)
	mux.HandleFunc("GET /api/supervision", h.Catalog.ListSupervision)
	mux.HandleFunc("POST /api/supervision", h.Catalog.CreateSupervision)
	mux.HandleFunc("DELETE /api/supervision/{id}", h.Catalog.DeleteSupervision)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	return mux
}
