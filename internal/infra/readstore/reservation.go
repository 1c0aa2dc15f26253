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

type ReservationReadStore struct {
	db store.Querier
}

func NewReservationReadStore(db store.Querier) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const findReservationViewSQL = `
SELECT r.id, r.guest_id, g.first_name || ' ' || g.last_name AS guest_name, g.email,
       r.room_id, rm.number AS room_number, r.assigned_room_id, arm.number AS assigned_room_number,
       r.check_in, r.check_out, r.number_of_guests, r.status,
       r.total_amount_cents, r.deposit_amount_cents, r.source, r.is_active,
       r.confirmed_at, r.cancelled_at, r.cancellation_reason,
       r.created_at, r.updated_at
FROM reservations r
JOIN guests g ON g.id = r.guest_id
JOIN rooms rm ON rm.id = r.room_id
LEFT JOIN rooms arm ON arm.id = r.assigned_room_id
WHERE r.id = $1`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.db.QueryRow(ctx, findReservationViewSQL, id)

	var (
		v                  queries.ReservationView
		assignedRoomID     pgtype.UUID
		assignedRoomNumber pgtype.Text
		checkIn, checkOut  pgtype.Date
		depositCents       pgtype.Int8
		confirmedAt        pgtype.Timestamptz
		cancelledAt        pgtype.Timestamptz
		cancellationReason pgtype.Text
		createdAt          pgtype.Timestamptz
		updatedAt          pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.GuestID, &v.GuestName, &v.GuestEmail,
		&v.RoomID, &v.RoomNumber, &assignedRoomID, &assignedRoomNumber,
		&checkIn, &checkOut, &v.NumberOfGuests, &v.Status,
		&v.TotalAmountCents, &depositCents, &v.Source, &v.IsActive,
		&confirmedAt, &cancelledAt, &cancellationReason,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	v.AssignedRoomID = pgconv.UUIDPtrFromPgtype(assignedRoomID)
	v.AssignedRoomNumber = pgconv.StringPtrFromPgtype(assignedRoomNumber)
	v.CheckIn = pgconv.DateFromPgtype(checkIn)
	v.CheckOut = pgconv.DateFromPgtype(checkOut)
	v.Nights = int(v.CheckOut.Sub(v.CheckIn).Hours() / 24)
	v.DepositAmountCents = pgconv.Int64PtrFromPgtype(depositCents)
	v.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	v.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	v.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}

const listReservationsBaseSQL = `
SELECT r.id, g.first_name || ' ' || g.last_name AS guest_name, rm.number AS room_number,
       r.check_in, r.check_out, r.number_of_guests, r.status,
       r.total_amount_cents, r.created_at
FROM reservations r
JOIN guests g ON g.id = r.guest_id
JOIN rooms rm ON rm.id = r.room_id
WHERE r.is_active
  AND ($1::uuid IS NULL OR r.guest_id = $1)
  AND ($2::uuid IS NULL OR COALESCE(r.assigned_room_id, r.room_id) = $2)
  AND ($3::text IS NULL OR r.status = $3)
  AND ($4::date IS NULL OR r.check_out > $4)
  AND ($5::date IS NULL OR r.check_in < $5)`

const listReservationsFirstPageSQL = listReservationsBaseSQL + `
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6`

const listReservationsKeysetSQL = listReservationsBaseSQL + `
  AND (r.created_at, r.id) < ($6, $7)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $8`

func (r *ReservationReadStore) FindFirstPage(ctx context.Context, filter queries.ReservationFilter, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, listReservationsFirstPageSQL,
		pgconv.UUIDPtrToPgtype(filter.GuestID),
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		pgconv.StringPtrToPgtype(filter.Status),
		datePtrToPgtype(filter.DateFrom),
		datePtrToPgtype(filter.DateTo),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}
	return scanReservationList(rows)
}

func (r *ReservationReadStore) FindKeyset(ctx context.Context, filter queries.ReservationFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	rows, err := r.db.Query(ctx, listReservationsKeysetSQL,
		pgconv.UUIDPtrToPgtype(filter.GuestID),
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		pgconv.StringPtrToPgtype(filter.Status),
		datePtrToPgtype(filter.DateFrom),
		datePtrToPgtype(filter.DateTo),
		lastCreatedAt, lastID, limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}
	return scanReservationList(rows)
}

// Half-open interval overlap against blocking statuses only.
const findBlockingReservationSQL = `
SELECT r.id
FROM reservations r
WHERE COALESCE(r.assigned_room_id, r.room_id) = $1
  AND r.is_active
  AND r.status IN ('confirmed', 'checked_in')
  AND r.check_in < $3
  AND r.check_out > $2
ORDER BY r.check_in
LIMIT 1`

func (r *ReservationReadStore) FindBlockingReservation(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, findBlockingReservationSQL,
		roomID, pgconv.DateToPgtype(checkIn), pgconv.DateToPgtype(checkOut),
	).Scan(&id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find blocking reservation", err)
	}
	return &id, nil
}

const findAvailableRoomsSQL = `
SELECT rm.id, rm.number, rm.room_type, rm.floor, rm.capacity, rm.nightly_rate_cents, rm.status
FROM rooms rm
WHERE rm.is_active
  AND rm.status <> 'out_of_service'
  AND ($3::text IS NULL OR rm.room_type = $3)
  AND ($4::int IS NULL OR rm.capacity >= $4)
  AND NOT EXISTS (
      SELECT 1
      FROM reservations r
      WHERE COALESCE(r.assigned_room_id, r.room_id) = rm.id
        AND r.is_active
        AND r.status IN ('confirmed', 'checked_in')
        AND r.check_in < $2
        AND r.check_out > $1
  )
ORDER BY rm.number`

func (r *ReservationReadStore) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType *string, minCapacity *int) ([]*queries.RoomListItem, error) {
	var capacity pgtype.Int4
	if minCapacity != nil {
		capacity = pgtype.Int4{Int32: int32(*minCapacity), Valid: true}
	}

	rows, err := r.db.Query(ctx, findAvailableRoomsSQL,
		pgconv.DateToPgtype(checkIn), pgconv.DateToPgtype(checkOut),
		pgconv.StringPtrToPgtype(roomType), capacity,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find available rooms", err)
	}
	defer rows.Close()

	var result []*queries.RoomListItem
	for rows.Next() {
		var item queries.RoomListItem
		if err := rows.Scan(&item.ID, &item.Number, &item.RoomType, &item.Floor,
			&item.Capacity, &item.NightlyRateCents, &item.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan available room", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate available rooms", err)
	}
	return result, nil
}

func scanReservationList(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item              queries.ReservationListItem
			checkIn, checkOut pgtype.Date
			createdAt         pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.GuestName, &item.RoomNumber,
			&checkIn, &checkOut, &item.NumberOfGuests, &item.Status,
			&item.TotalAmountCents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation list item", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(checkIn)
		item.CheckOut = pgconv.DateFromPgtype(checkOut)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation list", err)
	}
	return result, nil
}

func datePtrToPgtype(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
