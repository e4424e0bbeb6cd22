package aspiration

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// AppendResponse records an official response on the aspiration. The new
// response snapshots the aspiration's status at the moment of the write
// and is appended at the end of the log; responses are never reordered,
// rewritten, or deduplicated. UpdatedAt is refreshed.
func (s *Service) AppendResponse(ctx context.Context, id string, input ResponseInput) (domain.Aspiration, error) {
	if err := input.Validate(); err != nil {
		return domain.Aspiration{}, err
	}

	// Identity of the response is fixed up front so a mutate retry does
	// not mint a second id for the same logical response.
	respID := s.newID()
	timestamp := s.now()

	updated, err := s.aspirations.Mutate(ctx, id, func(cur domain.Aspiration) (domain.Aspiration, error) {
		resp := domain.AspirationResponse{
			ID:               respID,
			AuthorRole:       input.AuthorRole,
			AuthorName:       strings.TrimSpace(input.AuthorName),
			Content:          strings.TrimSpace(input.Content),
			Timestamp:        timestamp,
			StatusAtResponse: cur.Status,
			FileURL:          strings.TrimSpace(input.FileURL),
		}
		cur.Responses = append(cur.Responses, resp)
		if now := s.now(); now > cur.UpdatedAt {
			cur.UpdatedAt = now
		}
		return cur, nil
	})
	if err != nil {
		return domain.Aspiration{}, err
	}

	s.log.InfoContext(ctx, "response appended",
		slog.String("id", id),
		slog.String("response_id", respID),
		slog.String("author_role", input.AuthorRole.String()),
	)

	return updated, nil
}
