package aspiration

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// ApplyStaffUpdate merges the supplied fields onto the current record.
// Status changes are validated against the forward-only transition table;
// an illegal transition fails with domain.ErrInvalidTransition and leaves
// the record untouched. Identity fields (id, trackingId, createdAt) and the
// response log are never modified here. UpdatedAt is always refreshed.
func (s *Service) ApplyStaffUpdate(ctx context.Context, id string, input StaffUpdateInput) (domain.Aspiration, error) {
	if err := input.Validate(); err != nil {
		return domain.Aspiration{}, err
	}

	updated, err := s.aspirations.Mutate(ctx, id, func(cur domain.Aspiration) (domain.Aspiration, error) {
		if input.Status != nil {
			if !cur.Status.CanTransitionTo(*input.Status) {
				return cur, fmt.Errorf("status %s to %s: %w",
					cur.Status, *input.Status, domain.ErrInvalidTransition)
			}
			cur.Status = *input.Status
		}
		if input.AssignedTo != nil {
			cur.AssignedTo = *input.AssignedTo
		}
		if input.InternalNotes != nil {
			cur.InternalNotes = *input.InternalNotes
		}
		if input.TanggapanKema != nil {
			cur.TanggapanKema = *input.TanggapanKema
		}
		if input.TanggapanMPM != nil {
			cur.TanggapanMPM = *input.TanggapanMPM
		}
		if now := s.now(); now > cur.UpdatedAt {
			cur.UpdatedAt = now
		}
		return cur, nil
	})
	if err != nil {
		return domain.Aspiration{}, err
	}

	s.log.InfoContext(ctx, "aspiration updated",
		slog.String("id", id),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}
