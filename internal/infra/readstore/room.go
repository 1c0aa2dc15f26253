package readstore

import (
	"context"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomReadStore struct {
	db store.Querier
}

func NewRoomReadStore(db store.Querier) *RoomReadStore {
	return &RoomReadStore{db: db}
}

const findRoomViewSQL = `
SELECT id, number, room_type, floor, capacity, nightly_rate_cents,
       status, status_reason, is_active, created_at, updated_at
FROM rooms
WHERE id = $1`

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var (
		v            queries.RoomView
		statusReason pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findRoomViewSQL, id).Scan(
		&v.ID, &v.Number, &v.RoomType, &v.Floor, &v.Capacity, &v.NightlyRateCents,
		&v.Status, &statusReason, &v.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	v.StatusReason = pgconv.StringPtrFromPgtype(statusReason)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

const listRoomsSQL = `
SELECT id, number, room_type, floor, capacity, nightly_rate_cents, status
FROM rooms
WHERE is_active
  AND ($1::text IS NULL OR status = $1)
  AND ($2::text IS NULL OR room_type = $2)
ORDER BY number`

func (r *RoomReadStore) FindAll(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomListItem, error) {
	rows, err := r.db.Query(ctx, listRoomsSQL,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.StringPtrToPgtype(filter.RoomType),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var result []*queries.RoomListItem
	for rows.Next() {
		var item queries.RoomListItem
		if err := rows.Scan(&item.ID, &item.Number, &item.RoomType, &item.Floor,
			&item.Capacity, &item.NightlyRateCents, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room list item", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return result, nil
}
