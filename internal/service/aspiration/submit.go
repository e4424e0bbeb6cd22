package aspiration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// Submit validates the public submission, generates the internal id and
// public tracking code, and persists the aspiration. This is the only path
// that creates an aspiration.
//
// The tracking code is reserved in the track-map first so a code collision
// is detected before any aspiration state becomes visible; the reservation
// is rolled back if the record write fails. A lookup racing the creation
// sees a dangling mapping, which resolves as not-found.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (domain.Aspiration, error) {
	if err := input.Validate(); err != nil {
		return domain.Aspiration{}, err
	}

	category := input.Category
	if category == "" {
		category = domain.CategoryLainnya
	}

	id := s.newID()
	now := s.now()

	trackingID, err := s.reserveTrackingID(ctx, id)
	if err != nil {
		return domain.Aspiration{}, err
	}

	asp := domain.Aspiration{
		ID:          id,
		TrackingID:  trackingID,
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Category:    category,
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Responses:   []domain.AspirationResponse{},
	}

	if err := s.aspirations.Create(ctx, id, asp); err != nil {
		// Roll back the reservation so the code is not burned.
		if derr := s.trackMap.Delete(ctx, trackingID); derr != nil {
			s.log.WarnContext(ctx, "orphaned track mapping left behind",
				slog.String("tracking_id", trackingID),
				slog.String("error", derr.Error()),
			)
		}
		return domain.Aspiration{}, fmt.Errorf("create aspiration: %w", err)
	}

	s.log.InfoContext(ctx, "aspiration submitted",
		slog.String("id", id),
		slog.String("tracking_id", trackingID),
		slog.String("category", category.String()),
	)

	return asp, nil
}

// reserveTrackingID generates a candidate code and registers the mapping,
// regenerating on collision. A code has the form ASP-<YYYYMMDD>-<4 digits>,
// so within a day's volume collisions are rare but must not overwrite.
func (s *Service) reserveTrackingID(ctx context.Context, refID string) (string, error) {
	for attempt := 0; attempt < trackingAttempts; attempt++ {
		code := s.generateTrackingID()
		err := s.trackMap.Create(ctx, code, domain.TrackMapping{ID: code, RefID: refID})
		if err == nil {
			return code, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", fmt.Errorf("register tracking code: %w", err)
	}
	return "", fmt.Errorf("tracking code space exhausted after %d attempts: %w",
		trackingAttempts, domain.ErrConflict)
}

func (s *Service) generateTrackingID() string {
	date := time.UnixMilli(s.now()).UTC().Format("20060102")
	return fmt.Sprintf("ASP-%s-%04d", date, s.randInt(10000))
}
