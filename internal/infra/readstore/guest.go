package readstore

import (
	"context"
	"time"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type GuestReadStore struct {
	db store.Querier
}

func NewGuestReadStore(db store.Querier) *GuestReadStore {
	return &GuestReadStore{db: db}
}

const findGuestViewSQL = `
SELECT id, first_name, last_name, email, phone, document_id, notes,
       is_active, created_at, updated_at
FROM guests
WHERE id = $1`

func (r *GuestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GuestView, error) {
	var (
		v                    queries.GuestView
		phone, docID, notes  pgtype.Text
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findGuestViewSQL, id).Scan(
		&v.ID, &v.FirstName, &v.LastName, &v.Email, &phone, &docID, &notes,
		&v.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("guest not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find guest by ID", err)
	}
	v.Phone = pgconv.StringPtrFromPgtype(phone)
	v.DocumentID = pgconv.StringPtrFromPgtype(docID)
	v.Notes = pgconv.StringPtrFromPgtype(notes)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

const searchGuestsBaseSQL = `
SELECT id, first_name || ' ' || last_name AS full_name, email, phone, created_at
FROM guests
WHERE is_active
  AND ($1 = '' OR first_name ILIKE '%' || $1 || '%'
       OR last_name ILIKE '%' || $1 || '%'
       OR email ILIKE '%' || $1 || '%')`

const searchGuestsFirstPageSQL = searchGuestsBaseSQL + `
ORDER BY created_at DESC, id DESC
LIMIT $2`

const searchGuestsKeysetSQL = searchGuestsBaseSQL + `
  AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4`

func (r *GuestReadStore) SearchFirstPage(ctx context.Context, term string, limit int32) ([]*queries.GuestListItem, error) {
	rows, err := r.db.Query(ctx, searchGuestsFirstPageSQL, term, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search guests first page", err)
	}
	return scanGuestList(rows)
}

func (r *GuestReadStore) SearchKeyset(ctx context.Context, term string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.GuestListItem, error) {
	rows, err := r.db.Query(ctx, searchGuestsKeysetSQL, term, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search guests keyset", err)
	}
	return scanGuestList(rows)
}

func scanGuestList(rows pgx.Rows) ([]*queries.GuestListItem, error) {
	defer rows.Close()

	var result []*queries.GuestListItem
	for rows.Next() {
		var (
			item      queries.GuestListItem
			phone     pgtype.Text
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.FullName, &item.Email, &phone, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan guest list item", err)
		}
		item.Phone = pgconv.StringPtrFromPgtype(phone)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate guests", err)
	}
	return result, nil
}
