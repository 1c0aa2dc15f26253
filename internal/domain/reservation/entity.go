package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrInvalidSource       = errors.New("invalid booking source")
	ErrNonPositiveGuests   = errors.New("number of guests must be positive")
	ErrDepositExceedsTotal = errors.New("deposit cannot exceed total amount")
	ErrNotDeletable        = errors.New("only pending or cancelled reservations can be deleted")
	ErrAlreadyDeleted      = errors.New("reservation is already deleted")
	ErrImmutable           = errors.New("reservation is no longer editable")
)

// Reservation is the aggregate guarded by the lifecycle state machine. For
// any room, stays of reservations in a blocking status (confirmed or
// checked_in) must be pairwise non-overlapping; the commands layer enforces
// this with the availability check and the store backs it with an exclusion
// constraint.
type Reservation struct {
	id                 uuid.UUID
	guestID            uuid.UUID
	roomID             uuid.UUID
	assignedRoomID     *uuid.UUID
	stay               StayPeriod
	numberOfGuests     int
	status             Status
	totalAmount        Money
	depositAmount      *Money
	source             Source
	isActive           bool
	confirmedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason *string
	deletionReason     *string
	createdAt          time.Time
	updatedAt          time.Time
}

func NewReservation(
	guestID, roomID uuid.UUID,
	stay StayPeriod,
	numberOfGuests int,
	totalAmount Money,
	depositAmount *Money,
	source Source,
	now time.Time,
) (*Reservation, error) {
	if numberOfGuests <= 0 {
		return nil, ErrNonPositiveGuests
	}
	if !source.IsValid() {
		return nil, ErrInvalidSource
	}
	if depositAmount != nil && totalAmount.LessThan(*depositAmount) {
		return nil, ErrDepositExceedsTotal
	}

	return &Reservation{
		id:             uuid.New(),
		guestID:        guestID,
		roomID:         roomID,
		stay:           stay,
		numberOfGuests: numberOfGuests,
		status:         StatusPending,
		totalAmount:    totalAmount,
		depositAmount:  depositAmount,
		source:         source,
		isActive:       true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructReservation(
	id, guestID, roomID uuid.UUID,
	assignedRoomID *uuid.UUID,
	stay StayPeriod,
	numberOfGuests int,
	status Status,
	totalAmount Money,
	depositAmount *Money,
	source Source,
	isActive bool,
	confirmedAt, cancelledAt *time.Time,
	cancellationReason, deletionReason *string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                 id,
		guestID:            guestID,
		roomID:             roomID,
		assignedRoomID:     assignedRoomID,
		stay:               stay,
		numberOfGuests:     numberOfGuests,
		status:             status,
		totalAmount:        totalAmount,
		depositAmount:      depositAmount,
		source:             source,
		isActive:           isActive,
		confirmedAt:        confirmedAt,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		deletionReason:     deletionReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// TransitionTo is the generic guarded transition. Every named operation
// below goes through it so the legality table is enforced in one place.
func (r *Reservation) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) Confirm(now time.Time) error {
	if err := r.TransitionTo(StatusConfirmed, now); err != nil {
		return err
	}
	t := now
	r.confirmedAt = &t
	return nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	if err := r.TransitionTo(StatusCancelled, now); err != nil {
		return err
	}
	t := now
	r.cancelledAt = &t
	trimmed := strings.TrimSpace(reason)
	if trimmed != "" {
		r.cancellationReason = &trimmed
	}
	return nil
}

func (r *Reservation) MarkNoShow(now time.Time) error {
	return r.TransitionTo(StatusNoShow, now)
}

func (r *Reservation) CheckIn(now time.Time) error {
	return r.TransitionTo(StatusCheckedIn, now)
}

func (r *Reservation) CheckOut(now time.Time) error {
	return r.TransitionTo(StatusCheckedOut, now)
}

// ChangeStay and ChangeRoom mutate booking details; the caller must re-run
// the availability check before persisting when the reservation blocks.
func (r *Reservation) ChangeStay(stay StayPeriod, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCheckedOut {
		return ErrImmutable
	}
	r.stay = stay
	r.updatedAt = now
	return nil
}

func (r *Reservation) ChangeRoom(roomID uuid.UUID, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCheckedOut {
		return ErrImmutable
	}
	r.roomID = roomID
	r.updatedAt = now
	return nil
}

func (r *Reservation) ChangeGuests(numberOfGuests int, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCheckedOut {
		return ErrImmutable
	}
	if numberOfGuests <= 0 {
		return ErrNonPositiveGuests
	}
	r.numberOfGuests = numberOfGuests
	r.updatedAt = now
	return nil
}

func (r *Reservation) ChangeAmounts(total Money, deposit *Money, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCheckedOut {
		return ErrImmutable
	}
	if deposit != nil && total.LessThan(*deposit) {
		return ErrDepositExceedsTotal
	}
	r.totalAmount = total
	r.depositAmount = deposit
	r.updatedAt = now
	return nil
}

// AssignRoom records a room override after booking. The effective room used
// for the overlap invariant becomes the assigned one.
func (r *Reservation) AssignRoom(roomID uuid.UUID, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCheckedOut {
		return ErrImmutable
	}
	id := roomID
	r.assignedRoomID = &id
	r.updatedAt = now
	return nil
}

// SoftDelete clears the active flag; only pending or cancelled reservations
// may be deleted, and the record stays in storage.
func (r *Reservation) SoftDelete(reason string, now time.Time) error {
	if !r.isActive {
		return ErrAlreadyDeleted
	}
	if r.status != StatusPending && r.status != StatusCancelled {
		return ErrNotDeletable
	}
	r.isActive = false
	trimmed := strings.TrimSpace(reason)
	if trimmed != "" {
		r.deletionReason = &trimmed
	}
	r.updatedAt = now
	return nil
}

// EffectiveRoomID is the room the stay actually occupies.
func (r *Reservation) EffectiveRoomID() uuid.UUID {
	if r.assignedRoomID != nil {
		return *r.assignedRoomID
	}
	return r.roomID
}

func (r *Reservation) Blocks() bool {
	return r.isActive && r.status.Blocks()
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) GuestID() uuid.UUID          { return r.guestID }
func (r *Reservation) RoomID() uuid.UUID           { return r.roomID }
func (r *Reservation) AssignedRoomID() *uuid.UUID  { return r.assignedRoomID }
func (r *Reservation) Stay() StayPeriod            { return r.stay }
func (r *Reservation) NumberOfGuests() int         { return r.numberOfGuests }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) TotalAmount() Money          { return r.totalAmount }
func (r *Reservation) DepositAmount() *Money       { return r.depositAmount }
func (r *Reservation) Source() Source              { return r.source }
func (r *Reservation) IsActive() bool              { return r.isActive }
func (r *Reservation) ConfirmedAt() *time.Time     { return r.confirmedAt }
func (r *Reservation) CancelledAt() *time.Time     { return r.cancelledAt }
func (r *Reservation) CancellationReason() *string { return r.cancellationReason }
func (r *Reservation) DeletionReason() *string     { return r.deletionReason }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
