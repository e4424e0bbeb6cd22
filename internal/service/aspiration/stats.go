package aspiration

import (
	"context"
	"fmt"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
)

// Stats holds aggregate aspiration counts by workflow stage.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Review    int `json:"review"`
	Processed int `json:"processed"`
	Completed int `json:"completed"`
}

// Stats counts aspirations per workflow stage across the whole collection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		out    Stats
		cursor string
	)
	for {
		page, next, err := s.aspirations.List(ctx, cursor, 0)
		if err != nil {
			return Stats{}, fmt.Errorf("count aspirations: %w", err)
		}
		for _, asp := range page {
			out.Total++
			switch asp.Status {
			case domain.StatusPending:
				out.Pending++
			case domain.StatusReview:
				out.Review++
			case domain.StatusDiproses:
				out.Processed++
			case domain.StatusSelesai:
				out.Completed++
			}
		}
		if next == "" {
			return out, nil
		}
		cursor = next
	}
}
