package repository

import (
	"context"
	"time"

	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"

	"github.com/google/uuid"
)

// StayRecordRepository keeps the audit trail of physical arrivals and
// departures, one row per checked-in reservation.
type StayRecordRepository struct {
	db store.Querier
}

func NewStayRecordRepository(db store.Querier) *StayRecordRepository {
	return &StayRecordRepository{db: db}
}

const createCheckInSQL = `
INSERT INTO stay_records (id, reservation_id, room_id, checked_in_at, checked_in_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (r *StayRecordRepository) CreateCheckIn(ctx context.Context, reservationID, roomID, staffID uuid.UUID, at time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createCheckInSQL,
		uuid.New(), reservationID, roomID, at, staffID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create stay record", err)
	}
	return id, nil
}

const completeCheckOutSQL = `
UPDATE stay_records SET checked_out_at = $2, checked_out_by = $3
WHERE reservation_id = $1 AND checked_out_at IS NULL`

func (r *StayRecordRepository) CompleteCheckOut(ctx context.Context, reservationID, staffID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, completeCheckOutSQL, reservationID, at, staffID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete stay record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("open stay record not found", nil, infra.KindNotFound)
	}
	return nil
}
