package activity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/maisonvelour/storefront-backend/pkg/db/types"
	"github.com/maisonvelour/storefront-backend/pkg/db/models"
	"github.com/maisonvelour/storefront-backend/pkg/enums"
	pkgerrors "github.com/maisonvelour/storefront-backend/pkg/errors"
	"github.com/maisonvelour/storefront-backend/pkg/pagination"
)

// Service records and lists admin activity.
type Service interface {
	Record(ctx context.Context, entry Entry) error
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

// Entry describes one admin action to append to the trail.
type Entry struct {
	ActorID   string
	ActorRole enums.AdminRole
	Action    string
	Method    string
	Path      string
	Status    int
	Metadata  map[string]any
}

// ListParams configures pagination for the activity listing.
type ListParams struct {
	Limit   int
	Cursor  string
	ActorID string
}

// Item is the public view of an activity record.
type Item struct {
	ID        uuid.UUID       `json:"id"`
	ActorID   string          `json:"actorId"`
	ActorRole enums.AdminRole `json:"actorRole"`
	Action    string          `json:"action"`
	Method    string          `json:"method"`
	Path      string          `json:"path"`
	Status    int             `json:"status"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListResult wraps returned activity and the cursor for the next page.
type ListResult struct {
	Items  []Item `json:"items"`
	Cursor string `json:"cursor"`
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires activity dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "activity repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	if strings.TrimSpace(entry.ActorID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "actor id required")
	}
	if strings.TrimSpace(entry.Action) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "action required")
	}

	row := &models.ActivityLog{
		ID:        uuid.New(),
		ActorID:   entry.ActorID,
		ActorRole: entry.ActorRole,
		Action:    entry.Action,
		Method:    entry.Method,
		Path:      entry.Path,
		Status:    entry.Status,
		Metadata:  dbtypes.JSONMap(entry.Metadata),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record activity")
	}
	return nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listParams{
		Limit:   params.Limit,
		ActorID: strings.TrimSpace(params.ActorID),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list activity")
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:        row.ID,
			ActorID:   row.ActorID,
			ActorRole: row.ActorRole,
			Action:    row.Action,
			Method:    row.Method,
			Path:      row.Path,
			Status:    row.Status,
			Metadata:  map[string]any(row.Metadata),
			CreatedAt: row.CreatedAt,
		})
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: items, Cursor: cursor}, nil
}
