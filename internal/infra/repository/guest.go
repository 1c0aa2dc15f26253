package repository

import (
	"context"

	"hotel-backoffice/internal/domain/guest"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type GuestRepository struct {
	db store.Querier
}

func NewGuestRepository(db store.Querier) *GuestRepository {
	return &GuestRepository{db: db}
}

const createGuestSQL = `
INSERT INTO guests (
    id, first_name, last_name, email, phone, document_id, notes,
    is_active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *GuestRepository) Create(ctx context.Context, g *guest.Guest) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createGuestSQL,
		g.ID(), g.FirstName(), g.LastName(), g.Email().String(),
		pgconv.StringPtrToPgtype(g.Phone()),
		pgconv.StringPtrToPgtype(g.DocumentID()),
		pgconv.StringPtrToPgtype(g.Notes()),
		g.IsActive(), g.CreatedAt(), g.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create guest", err)
	}
	return id, nil
}

const updateGuestSQL = `
UPDATE guests SET
    first_name = $2, last_name = $3, email = $4, phone = $5,
    document_id = $6, notes = $7, is_active = $8, updated_at = $9
WHERE id = $1`

func (r *GuestRepository) Update(ctx context.Context, g *guest.Guest) error {
	tag, err := r.db.Exec(ctx, updateGuestSQL,
		g.ID(), g.FirstName(), g.LastName(), g.Email().String(),
		pgconv.StringPtrToPgtype(g.Phone()),
		pgconv.StringPtrToPgtype(g.DocumentID()),
		pgconv.StringPtrToPgtype(g.Notes()),
		g.IsActive(), g.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update guest", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("guest not found", nil, infra.KindNotFound)
	}
	return nil
}

const findGuestByIDSQL = `
SELECT id, first_name, last_name, email, phone, document_id, notes,
       is_active, created_at, updated_at
FROM guests
WHERE id = $1`

func (r *GuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	var (
		guestID              uuid.UUID
		firstName, lastName  string
		emailRaw             string
		phone, docID, notes  pgtype.Text
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findGuestByIDSQL, id).Scan(
		&guestID, &firstName, &lastName, &emailRaw, &phone, &docID, &notes,
		&isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find guest by ID", err)
	}

	email, err := guest.NewEmail(emailRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored guest email is invalid", err)
	}

	return guest.ReconstructGuest(
		guestID, firstName, lastName, email,
		pgconv.StringPtrFromPgtype(phone),
		pgconv.StringPtrFromPgtype(docID),
		pgconv.StringPtrFromPgtype(notes),
		isActive,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
