// Package catalog manages the portal's presentational collections:
// legislative documents, structure members, and supervision activities.
// They share the indexed-entity CRUD contract with aspirations but carry
// no tracking or response machinery.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/mpmulbi/aspirasi-backend/internal/domain"
	"github.com/mpmulbi/aspirasi-backend/internal/entity"
	"github.com/mpmulbi/aspirasi-backend/internal/store"
)

var (
	legislativeDef = entity.Definition{Collection: "legislative", Index: "legislative-docs"}
	structureDef   = entity.Definition{Collection: "structure", Index: "structure-members"}
	supervisionDef = entity.Definition{Collection: "supervision", Index: "supervision-activities"}
)

// Service provides CRUD over the three catalog collections.
type Service struct {
	legislative *entity.Collection[domain.LegislativeDocument]
	structure   *entity.Collection[domain.StructureMember]
	supervision *entity.Collection[domain.SupervisionActivity]
	log         *slog.Logger

	now   func() int64
	newID func() string
}

// NewService creates the catalog service over the given store.
func NewService(log *slog.Logger, st store.Store) *Service {
	return &Service{
		legislative: entity.NewCollection[domain.LegislativeDocument](st, legislativeDef),
		structure:   entity.NewCollection[domain.StructureMember](st, structureDef),
		supervision: entity.NewCollection[domain.SupervisionActivity](st, supervisionDef),
		log:         log.With("service", "catalog"),
		now:         domain.NowMillis,
		newID:       func() string { return uuid.New().String() },
	}
}

// CreateLegislative stores a new legislative document.
func (s *Service) CreateLegislative(ctx context.Context, input LegislativeInput) (domain.LegislativeDocument, error) {
	if err := input.Validate(); err != nil {
		return domain.LegislativeDocument{}, err
	}
	doc := domain.LegislativeDocument{
		ID:        s.newID(),
		Title:     input.Title,
		Category:  input.Category,
		URL:       input.URL,
		UpdatedAt: s.now(),
	}
	if err := s.legislative.Create(ctx, doc.ID, doc); err != nil {
		return domain.LegislativeDocument{}, fmt.Errorf("create legislative document: %w", err)
	}
	s.log.InfoContext(ctx, "legislative document created", slog.String("id", doc.ID))
	return doc, nil
}

// ListLegislative returns all legislative documents, most recently updated first.
func (s *Service) ListLegislative(ctx context.Context) ([]domain.LegislativeDocument, error) {
	docs, err := s.legislative.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list legislative documents: %w", err)
	}
	sort.Slice(docs, func(a, b int) bool { return docs[a].UpdatedAt > docs[b].UpdatedAt })
	return docs, nil
}

// DeleteLegislative removes a legislative document.
func (s *Service) DeleteLegislative(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "legislative document", id,
		func() (bool, error) { return s.legislative.Exists(ctx, id) },
		func() error { return s.legislative.Delete(ctx, id) })
}

// CreateStructureMember stores a new structure member.
func (s *Service) CreateStructureMember(ctx context.Context, input StructureMemberInput) (domain.StructureMember, error) {
	if err := input.Validate(); err != nil {
		return domain.StructureMember{}, err
	}
	member := domain.StructureMember{
		ID:       s.newID(),
		Name:     input.Name,
		Position: input.Position,
		Order:    input.Order,
		PhotoURL: input.PhotoURL,
	}
	if err := s.structure.Create(ctx, member.ID, member); err != nil {
		return domain.StructureMember{}, fmt.Errorf("create structure member: %w", err)
	}
	s.log.InfoContext(ctx, "structure member created", slog.String("id", member.ID))
	return member, nil
}

// ListStructureMembers returns all structure members in display order.
func (s *Service) ListStructureMembers(ctx context.Context) ([]domain.StructureMember, error) {
	members, err := s.structure.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list structure members: %w", err)
	}
	sort.Slice(members, func(a, b int) bool { return members[a].Order < members[b].Order })
	return members, nil
}

// DeleteStructureMember removes a structure member.
func (s *Service) DeleteStructureMember(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "structure member", id,
		func() (bool, error) { return s.structure.Exists(ctx, id) },
		func() error { return s.structure.Delete(ctx, id) })
}

// CreateSupervision stores a new supervision activity.
func (s *Service) CreateSupervision(ctx context.Context, input SupervisionInput) (domain.SupervisionActivity, error) {
	if err := input.Validate(); err != nil {
		return domain.SupervisionActivity{}, err
	}
	date := input.Date
	if date == 0 {
		date = s.now()
	}
	activity := domain.SupervisionActivity{
		ID:          s.newID(),
		Title:       input.Title,
		Date:        date,
		Description: input.Description,
	}
	if err := s.supervision.Create(ctx, activity.ID, activity); err != nil {
		return domain.SupervisionActivity{}, fmt.Errorf("create supervision activity: %w", err)
	}
	s.log.InfoContext(ctx, "supervision activity created", slog.String("id", activity.ID))
	return activity, nil
}

// ListSupervision returns all supervision activities, most recent first.
func (s *Service) ListSupervision(ctx context.Context) ([]domain.SupervisionActivity, error) {
	activities, err := s.supervision.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list supervision activities: %w", err)
	}
	sort.Slice(activities, func(a, b int) bool { return activities[a].Date > activities[b].Date })
	return activities, nil
}

// DeleteSupervision removes a supervision activity.
func (s *Service) DeleteSupervision(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "supervision activity", id,
		func() (bool, error) { return s.supervision.Exists(ctx, id) },
		func() error { return s.supervision.Delete(ctx, id) })
}

func (s *Service) deleteByID(ctx context.Context, kind, id string, exists func() (bool, error), del func() error) error {
	ok, err := exists()
	if err != nil {
		return fmt.Errorf("check %s: %w", kind, err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	if err := del(); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	s.log.InfoContext(ctx, "catalog record deleted",
		slog.String("kind", kind),
		slog.String("id", id),
	)
	return nil
}
