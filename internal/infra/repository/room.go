package repository

import (
	"context"

	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct {
	db store.Querier
}

func NewRoomRepository(db store.Querier) *RoomRepository {
	return &RoomRepository{db: db}
}

const createRoomSQL = `
INSERT INTO rooms (
    id, number, room_type, floor, capacity, nightly_rate_cents,
    status, status_reason, is_active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *RoomRepository) Create(ctx context.Context, rm *room.Room) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createRoomSQL,
		rm.ID(), rm.Number(), rm.Type().String(), rm.Floor(), rm.Capacity(),
		rm.NightlyRate().Cents(), rm.Status().String(),
		pgconv.StringPtrToPgtype(rm.StatusReason()),
		rm.IsActive(), rm.CreatedAt(), rm.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}
	return id, nil
}

const updateRoomSQL = `
UPDATE rooms SET
    room_type = $2, floor = $3, capacity = $4, nightly_rate_cents = $5,
    status = $6, status_reason = $7, is_active = $8, updated_at = $9
WHERE id = $1`

func (r *RoomRepository) Update(ctx context.Context, rm *room.Room) error {
	tag, err := r.db.Exec(ctx, updateRoomSQL,
		rm.ID(), rm.Type().String(), rm.Floor(), rm.Capacity(),
		rm.NightlyRate().Cents(), rm.Status().String(),
		pgconv.StringPtrToPgtype(rm.StatusReason()),
		rm.IsActive(), rm.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

const findRoomForUpdateSQL = `
SELECT id, number, room_type, floor, capacity, nightly_rate_cents,
       status, status_reason, is_active, created_at, updated_at
FROM rooms
WHERE id = $1
FOR UPDATE`

func (r *RoomRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		roomID           uuid.UUID
		number           string
		roomType         string
		floor, capacity  int
		nightlyRateCents int64
		status           string
		statusReason     pgtype.Text
		isActive         bool
		createdAt        pgtype.Timestamptz
		updatedAt        pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findRoomForUpdateSQL, id).Scan(
		&roomID, &number, &roomType, &floor, &capacity, &nightlyRateCents,
		&status, &statusReason, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room for update", err)
	}

	return room.ReconstructRoom(
		roomID, number, room.RoomType(roomType), floor, capacity,
		reservation.MustMoney(nightlyRateCents),
		room.Status(status),
		pgconv.StringPtrFromPgtype(statusReason),
		isActive,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
