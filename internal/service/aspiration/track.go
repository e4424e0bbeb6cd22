package aspiration

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// TrackByCode resolves a public tracking code to the full aspiration.
// Lookup is case-insensitive. Returns domain.ErrNotFound for unknown codes
// and for mappings whose aspiration no longer exists.
func (s *Service) TrackByCode(ctx context.Context, code string) (domain.Aspiration, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Aspiration{}, domain.ErrNotFound
	}

	mapping, err := s.trackMap.Get(ctx, code)
	if err != nil {
		return domain.Aspiration{}, err
	}

	asp, err := s.aspirations.Get(ctx, mapping.RefID)
	if errors.Is(err, domain.ErrNotFound) {
		// Dangling mapping: the record was deleted or never finished
		// being created. Not an internal error from the caller's view.
		return domain.Aspiration{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Aspiration{}, fmt.Errorf("resolve tracking code %s: %w", code, err)
	}
	return asp, nil
}

// Get returns an aspiration by its internal id.
func (s *Service) Get(ctx context.Context, id string) (domain.Aspiration, error) {
	return s.aspirations.Get(ctx, id)
}

// List returns every aspiration, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Aspiration, error) {
	items, err := s.aspirations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list aspirations: %w", err)
	}
	sort.Slice(items, func(a, b int) bool {
		return items[a].CreatedAt > items[b].CreatedAt
	})
	return items, nil
}
