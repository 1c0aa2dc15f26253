package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type GuestView struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	DocumentID *string   `json:"document_id,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type GuestListItem struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GuestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GuestView, error)
	// Search matches name or email, case-insensitively.
	Search(ctx context.Context, term string, after *Cursor, limit int) ([]*GuestListItem, *Cursor, error)
}

type GuestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GuestView, error)
	SearchFirstPage(ctx context.Context, term string, limit int32) ([]*GuestListItem, error)
	SearchKeyset(ctx context.Context, term string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*GuestListItem, error)
}

type guestQueriesImpl struct {
	repo GuestViewRepo
}

func NewGuestQueries(repo GuestViewRepo) GuestQueries {
	return &guestQueriesImpl{repo: repo}
}

func (q *guestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GuestView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *guestQueriesImpl) Search(ctx context.Context, term string, after *Cursor, limit int) ([]*GuestListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*GuestListItem
		err  error
	)
	if after != nil && after.After != "" {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.SearchKeyset(ctx, term, lastCreatedAt, lastID, int32(limit))
	} else {
		rows, err = q.repo.SearchFirstPage(ctx, term, int32(limit))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) == limit {
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return rows, next, nil
}
