package repository

import (
	"context"

	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/infra"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct {
	db store.Querier
}

func NewReservationRepository(db store.Querier) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const createReservationSQL = `
INSERT INTO reservations (
    id, guest_id, room_id, assigned_room_id, check_in, check_out,
    number_of_guests, status, total_amount_cents, deposit_amount_cents,
    source, is_active, confirmed_at, cancelled_at, cancellation_reason,
    deletion_reason, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING id`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, createReservationSQL,
		res.ID(), res.GuestID(), res.RoomID(),
		pgconv.UUIDPtrToPgtype(res.AssignedRoomID()),
		pgconv.DateToPgtype(res.Stay().CheckIn()),
		pgconv.DateToPgtype(res.Stay().CheckOut()),
		res.NumberOfGuests(), res.Status().String(),
		res.TotalAmount().Cents(), depositCents(res.DepositAmount()),
		res.Source().String(), res.IsActive(),
		pgconv.TimePtrToPgtype(res.ConfirmedAt()),
		pgconv.TimePtrToPgtype(res.CancelledAt()),
		pgconv.StringPtrToPgtype(res.CancellationReason()),
		pgconv.StringPtrToPgtype(res.DeletionReason()),
		res.CreatedAt(), res.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return id, nil
}

const updateReservationSQL = `
UPDATE reservations SET
    room_id = $2, assigned_room_id = $3, check_in = $4, check_out = $5,
    number_of_guests = $6, status = $7, total_amount_cents = $8,
    deposit_amount_cents = $9, is_active = $10, confirmed_at = $11,
    cancelled_at = $12, cancellation_reason = $13, deletion_reason = $14,
    updated_at = $15
WHERE id = $1`

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationSQL,
		res.ID(), res.RoomID(),
		pgconv.UUIDPtrToPgtype(res.AssignedRoomID()),
		pgconv.DateToPgtype(res.Stay().CheckIn()),
		pgconv.DateToPgtype(res.Stay().CheckOut()),
		res.NumberOfGuests(), res.Status().String(),
		res.TotalAmount().Cents(), depositCents(res.DepositAmount()),
		res.IsActive(),
		pgconv.TimePtrToPgtype(res.ConfirmedAt()),
		pgconv.TimePtrToPgtype(res.CancelledAt()),
		pgconv.StringPtrToPgtype(res.CancellationReason()),
		pgconv.StringPtrToPgtype(res.DeletionReason()),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

const findReservationForUpdateSQL = `
SELECT id, guest_id, room_id, assigned_room_id, check_in, check_out,
       number_of_guests, status, total_amount_cents, deposit_amount_cents,
       source, is_active, confirmed_at, cancelled_at, cancellation_reason,
       deletion_reason, created_at, updated_at
FROM reservations
WHERE id = $1
FOR UPDATE`

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, findReservationForUpdateSQL, id)

	var (
		resID, guestID, roomID             uuid.UUID
		assignedRoomID                     pgtype.UUID
		checkIn, checkOut                  pgtype.Date
		numberOfGuests                     int
		status, source                     string
		totalCents                         int64
		depositAmountCents                 pgtype.Int8
		isActive                           bool
		confirmedAt, cancelledAt           pgtype.Timestamptz
		cancellationReason, deletionReason pgtype.Text
		createdAt, updatedAt               pgtype.Timestamptz
	)
	err := row.Scan(
		&resID, &guestID, &roomID, &assignedRoomID, &checkIn, &checkOut,
		&numberOfGuests, &status, &totalCents, &depositAmountCents,
		&source, &isActive, &confirmedAt, &cancelledAt, &cancellationReason,
		&deletionReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation for update", err)
	}

	stay, err := reservation.NewStayPeriod(pgconv.DateFromPgtype(checkIn), pgconv.DateFromPgtype(checkOut))
	if err != nil {
		return nil, infra.WrapRepoErr("stored stay period is invalid", err)
	}

	var deposit *reservation.Money
	if d := pgconv.Int64PtrFromPgtype(depositAmountCents); d != nil {
		m := reservation.MustMoney(*d)
		deposit = &m
	}

	return reservation.ReconstructReservation(
		resID, guestID, roomID,
		pgconv.UUIDPtrFromPgtype(assignedRoomID),
		stay, numberOfGuests,
		reservation.Status(status),
		reservation.MustMoney(totalCents), deposit,
		reservation.Source(source), isActive,
		pgconv.TimePtrFromPgtype(confirmedAt),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.StringPtrFromPgtype(cancellationReason),
		pgconv.StringPtrFromPgtype(deletionReason),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// Half-open interval overlap: an existing stay conflicts when it starts
// before the requested check-out and ends after the requested check-in.
const hasBlockingOverlapSQL = `
SELECT EXISTS (
    SELECT 1
    FROM reservations
    WHERE COALESCE(assigned_room_id, room_id) = $1
      AND is_active
      AND status IN ('confirmed', 'checked_in')
      AND check_in < $3
      AND check_out > $2
      AND ($4::uuid IS NULL OR id <> $4)
)`

func (r *ReservationRepository) HasBlockingOverlap(ctx context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasBlockingOverlapSQL,
		roomID,
		pgconv.DateToPgtype(stay.CheckIn()),
		pgconv.DateToPgtype(stay.CheckOut()),
		pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check blocking overlap", err)
	}
	return exists, nil
}

func depositCents(m *reservation.Money) pgtype.Int8 {
	if m == nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: m.Cents(), Valid: true}
}
