package aspiration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Delete removes an aspiration and its tracking mapping. The store offers
// no cross-key transactions, so this is a compensating-action pair: the
// primary record goes first, then the mapping. If the mapping removal
// fails the mapping dangles, which tracking lookups already resolve as
// not-found; the failure is logged for operator cleanup rather than
// surfaced, since the user-visible deletion has already happened.
func (s *Service) Delete(ctx context.Context, id string) error {
	asp, err := s.aspirations.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.aspirations.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete aspiration: %w", err)
	}

	code := strings.ToUpper(asp.TrackingID)
	if err := s.trackMap.Delete(ctx, code); err != nil {
		s.log.WarnContext(ctx, "track mapping left dangling after delete",
			slog.String("id", id),
			slog.String("tracking_id", code),
			slog.String("error", err.Error()),
		)
	}

	s.log.InfoContext(ctx, "aspiration deleted",
		slog.String("id", id),
		slog.String("tracking_id", code),
	)
	return nil
}
