// Package aspiration implements the aspiration lifecycle: public submission
// with tracking-code generation, public tracking lookup, staff updates under
// the status state machine, and append-only official responses.
package aspiration

import (
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/entity"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

// trackingAttempts bounds tracking-code regeneration when a freshly
// generated code collides with an existing one.
const trackingAttempts = 5

var (
	aspirationDef = entity.Definition{Collection: "aspiration", Index: "aspirations"}
	trackMapDef   = entity.Definition{Collection: "track-map", Index: "track-mapping"}
)

// Service provides aspiration lifecycle operations.
type Service struct {
	aspirations *entity.Collection[domain.Aspiration]
	trackMap    *entity.Collection[domain.TrackMapping]
	log         *slog.Logger

	// Overridable for tests.
	now     func() int64
	newID   func() string
	randInt func(n int) int
}

// NewService creates the aspiration service over the given store.
func NewService(log *slog.Logger, st store.Store) *Service {
	return &Service{
		aspirations: entity.NewCollection[domain.Aspiration](st, aspirationDef),
		trackMap:    entity.NewCollection[domain.TrackMapping](st, trackMapDef),
		log:         log.With("service", "aspiration"),
		now:         domain.NowMillis,
		newID:       func() string { return uuid.New().String() },
		randInt:     rand.IntN,
	}
}
