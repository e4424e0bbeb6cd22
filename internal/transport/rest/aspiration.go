package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/service/aspiration"
	"github.com/mpmulbi/aspirasi-backend/pkg/ctxutil"
)

// aspirationService defines the minimal interface needed by AspirationHandler.
type aspirationService interface {
	Submit(ctx context.Context, input aspiration.SubmitInput) (domain.Aspiration, error)
	List(ctx context.Context) ([]domain.Aspiration, error)
	TrackByCode(ctx context.Context, code string) (domain.Aspiration, error)
	ApplyStaffUpdate(ctx context.Context, id string, input aspiration.StaffUpdateInput) (domain.Aspiration, error)
	AppendResponse(ctx context.Context, id string, input aspiration.ResponseInput) (domain.Aspiration, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (aspiration.Stats, error)
}

// AspirationHandler serves the aspiration REST endpoints.
type AspirationHandler struct {
	svc aspirationService
	log *slog.Logger
}

// NewAspirationHandler creates an AspirationHandler.
func NewAspirationHandler(svc aspirationService, logger *slog.Logger) *AspirationHandler {
	return &AspirationHandler{svc: svc, log: logger.With("handler", "aspiration")}
}

type submitRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type staffUpdateRequest struct {
	Status        *string `json:"status"`
	AssignedTo    *string `json:"assignedTo"`
	InternalNotes *string `json:"internalNotes"`
	TanggapanKema *string `json:"tanggapanKema"`
	TanggapanMPM  *string `json:"tanggapanMpm"`
}

type responseRequest struct {
	Content    string `json:"content"`
	AuthorRole string `json:"authorRole"`
	AuthorName string `json:"authorName"`
	FileURL    string `json:"fileUrl"`
}

type listResponse struct {
	Items []domain.Aspiration `json:"items"`
}

// Submit handles POST /api/aspirations.
func (h *AspirationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Submit(r.Context(), aspiration.SubmitInput{
		Name:        req.Name,
		Email:       req.Email,
		Category:    domain.AspirationCategory(req.Category),
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, created)
}

// List handles GET /api/aspirations. A store failure degrades to an empty
// item list so the staff dashboard keeps rendering; the envelope carries
// success=false and the error text so callers can tell the two apart.
func (h *AspirationHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list degraded", slog.String("error", err.Error()))
		writeJSON(w, http.StatusOK, envelope{
			Success: false,
			Data:    listResponse{Items: []domain.Aspiration{}},
			Error:   "store unavailable",
		})
		return
	}
	if items == nil {
		items = []domain.Aspiration{}
	}

	writeData(w, http.StatusOK, listResponse{Items: items})
}

// Track handles GET /api/aspirations/track/{trackingId}.
func (h *AspirationHandler) Track(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.TrackByCode(r.Context(), r.PathValue("trackingId"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, record)
}

// StaffUpdate handles PATCH /api/aspirations/{id}.
func (h *AspirationHandler) StaffUpdate(w http.ResponseWriter, r *http.Request) {
	var req staffUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := aspiration.StaffUpdateInput{
		InternalNotes: req.InternalNotes,
		TanggapanKema: req.TanggapanKema,
		TanggapanMPM:  req.TanggapanMPM,
	}
	if req.Status != nil {
		status := domain.AspirationStatus(*req.Status)
		input.Status = &status
	}
	if req.AssignedTo != nil {
		role := domain.UserRole(*req.AssignedTo)
		input.AssignedTo = &role
	}

	updated, err := h.svc.ApplyStaffUpdate(r.Context(), r.PathValue("id"), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

// Respond handles POST /api/aspirations/{id}/responses.
func (h *AspirationHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req responseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := aspiration.ResponseInput{
		Content:    req.Content,
		AuthorRole: domain.UserRole(req.AuthorRole),
		AuthorName: req.AuthorName,
		FileURL:    req.FileURL,
	}
	// An authenticated staff session overrides whatever the body claims.
	if actor, ok := ctxutil.ActorFromCtx(r.Context()); ok {
		input.AuthorRole = actor.Role
		input.AuthorName = actor.Name
	}

	updated, err := h.svc.AppendResponse(r.Context(), r.PathValue("id"), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/aspirations/{id}. Staff only.
func (h *AspirationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := ctxutil.ActorFromCtx(r.Context())
	if !ok || !actor.Role.IsStaff() {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"id": r.PathValue("id")})
}

// Stats handles GET /api/stats.
func (h *AspirationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}
