package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	GuestID            uuid.UUID  `json:"guest_id"`
	GuestName          string     `json:"guest_name"`
	GuestEmail         string     `json:"guest_email"`
	RoomID             uuid.UUID  `json:"room_id"`
	RoomNumber         string     `json:"room_number"`
	AssignedRoomID     *uuid.UUID `json:"assigned_room_id,omitempty"`
	AssignedRoomNumber *string    `json:"assigned_room_number,omitempty"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	Nights             int        `json:"nights"`
	NumberOfGuests     int        `json:"number_of_guests"`
	Status             string     `json:"status"`
	TotalAmountCents   int64      `json:"total_amount_cents"`
	DepositAmountCents *int64     `json:"deposit_amount_cents,omitempty"`
	Source             string     `json:"source"`
	IsActive           bool       `json:"is_active"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID `json:"id"`
	GuestName        string    `json:"guest_name"`
	RoomNumber       string    `json:"room_number"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	NumberOfGuests   int       `json:"number_of_guests"`
	Status           string    `json:"status"`
	TotalAmountCents int64     `json:"total_amount_cents"`
	CreatedAt        time.Time `json:"created_at"`
}

type ReservationFilter struct {
	GuestID  *uuid.UUID
	RoomID   *uuid.UUID
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// RoomAvailability is the answer to "is this room free for this stay":
// either available, or blocked by a concrete reservation.
type RoomAvailability struct {
	RoomID                uuid.UUID  `json:"room_id"`
	CheckIn               time.Time  `json:"check_in"`
	CheckOut              time.Time  `json:"check_out"`
	Available             bool       `json:"available"`
	BlockingReservationID *uuid.UUID `json:"blocking_reservation_id,omitempty"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
	CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailability, error)
	ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType *string, minCapacity *int) ([]*RoomListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindFirstPage(ctx context.Context, filter ReservationFilter, limit int32) ([]*ReservationListItem, error)
	FindKeyset(ctx context.Context, filter ReservationFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
	FindBlockingReservation(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*uuid.UUID, error)
	FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType *string, minCapacity *int) ([]*RoomListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var (
		rows []*ReservationListItem
		err  error
	)
	if after != nil && after.After != "" {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, decodeErr
		}
		rows, err = q.repo.FindKeyset(ctx, filter, lastCreatedAt, lastID, int32(limit))
	} else {
		rows, err = q.repo.FindFirstPage(ctx, filter, int32(limit))
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

func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time) (*RoomAvailability, error) {
	blockingID, err := q.repo.FindBlockingReservation(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	return &RoomAvailability{
		RoomID:                roomID,
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		Available:             blockingID == nil,
		BlockingReservationID: blockingID,
	}, nil
}

func (q *reservationQueriesImpl) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, roomType *string, minCapacity *int) ([]*RoomListItem, error) {
	return q.repo.FindAvailableRooms(ctx, checkIn, checkOut, roomType, minCapacity)
}
