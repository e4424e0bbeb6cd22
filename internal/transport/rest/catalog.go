package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/service/catalog"
)

// catalogService defines the minimal interface needed by CatalogHandler.
type catalogService interface {
	CreateLegislative(ctx context.Context, input catalog.LegislativeInput) (domain.LegislativeDocument, error)
	ListLegislative(ctx context.Context) ([]domain.LegislativeDocument, error)
	DeleteLegislative(ctx context.Context, id string) error
	CreateStructureMember(ctx context.Context, input catalog.StructureMemberInput) (domain.StructureMember, error)
	ListStructureMembers(ctx context.Context) ([]domain.StructureMember, error)
	DeleteStructureMember(ctx context.Context, id string) error
	CreateSupervision(ctx context.Context, input catalog.SupervisionInput) (domain.SupervisionActivity, error)
	ListSupervision(ctx context.Context) ([]domain.SupervisionActivity, error)
	DeleteSupervision(ctx context.Context, id string) error
}

// CatalogHandler serves the public content collections: legislative
// documents, the organisation structure and supervision activities.
type CatalogHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: logger.With("handler", "catalog")}
}

type legislativeRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

type structureMemberRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Order    int    `json:"order"`
	PhotoURL string `json:"photoUrl"`
}

type supervisionRequest struct {
	Title       string `json:"title"`
	Date        int64  `json:"date"`
	Description string `json:"description"`
}

// CreateLegislative handles POST /api/legislative.
func (h *CatalogHandler) CreateLegislative(w http.ResponseWriter, r *http.Request) {
	var req legislativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.svc.CreateLegislative(r.Context(), catalog.LegislativeInput{
		Title:    req.Title,
		Category: req.Category,
		URL:      req.URL,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, doc)
}

// ListLegislative handles GET /api/legislative.
func (h *CatalogHandler) ListLegislative(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.ListLegislative(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if docs == nil {
		docs = []domain.LegislativeDocument{}
	}

	writeData(w, http.StatusOK, map[string][]domain.LegislativeDocument{"items": docs})
}

// DeleteLegislative handles DELETE /api/legislative/{id}.
func (h *CatalogHandler) DeleteLegislative(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteLegislative)
}

// CreateStructureMember handles POST /api/structure.
func (h *CatalogHandler) CreateStructureMember(w http.ResponseWriter, r *http.Request) {
	var req structureMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.svc.CreateStructureMember(r.Context(), catalog.StructureMemberInput{
		Name:     req.Name,
		Position: req.Position,
		Order:    req.Order,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, member)
}

// ListStructureMembers handles GET /api/structure.
func (h *CatalogHandler) ListStructureMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListStructureMembers(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if members == nil {
		members = []domain.StructureMember{}
	}

	writeData(w, http.StatusOK, map[string][]domain.StructureMember{"items": members})
}

// DeleteStructureMember handles DELETE /api/structure/{id}.
func (h *CatalogHandler) DeleteStructureMember(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteStructureMember)
}

// CreateSupervision handles POST /api/supervision.
func (h *CatalogHandler) CreateSupervision(w http.ResponseWriter, r *http.Request) {
	var req supervisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	activity, err := h.svc.CreateSupervision(r.Context(), catalog.SupervisionInput{
		Title:       req.Title,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, activity)
}

// ListSupervision handles GET /api/supervision.
func (h *CatalogHandler) ListSupervision(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.ListSupervision(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if activities == nil {
		activities = []domain.SupervisionActivity{}
	}

	writeData(w, http.StatusOK, map[string][]domain.SupervisionActivity{"items": activities})
}

// DeleteSupervision handles DELETE /api/supervision/{id}.
func (h *CatalogHandler) DeleteSupervision(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteSupervision)
}

func (h *CatalogHandler) delete(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	id := r.PathValue("id")
	if err := del(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": id})
}
