package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-backoffice/internal/domain/reservation"
)

var (
	ErrInvalidStatus     = errors.New("invalid room status")
	ErrInvalidTransition = errors.New("room status transition not allowed")
	ErrInvalidRoomType   = errors.New("invalid room type")
	ErrEmptyNumber       = errors.New("room number must not be empty")
	ErrNonPositiveCap    = errors.New("room capacity must be positive")
	ErrInvalidFloor      = errors.New("floor must not be negative")
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusOccupied     Status = "occupied"
	StatusCleaning     Status = "cleaning"
	StatusMaintenance  Status = "maintenance"
	StatusOutOfService Status = "out_of_service"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance, StatusOutOfService:
		return true
	default:
		return false
	}
}

// Sellable reports whether the room can accept new reservations. Occupied
// rooms remain sellable for future dates; only out_of_service rooms are
// withdrawn from sale entirely.
func (s Status) Sellable() bool {
	return s != StatusOutOfService
}

var operationalTransitions = map[Status][]Status{
	StatusAvailable:    {StatusOccupied, StatusCleaning, StatusMaintenance, StatusOutOfService},
	StatusOccupied:     {StatusCleaning, StatusMaintenance, StatusOutOfService},
	StatusCleaning:     {StatusAvailable, StatusMaintenance, StatusOutOfService},
	StatusMaintenance:  {StatusAvailable, StatusCleaning, StatusOutOfService},
	StatusOutOfService: {StatusAvailable, StatusMaintenance},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range operationalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RoomType string

const (
	TypeSingle     RoomType = "single"
	TypeDouble     RoomType = "double"
	TypeTwin       RoomType = "twin"
	TypeSuite      RoomType = "suite"
	TypeDeluxe     RoomType = "deluxe"
	TypeAccessible RoomType = "accessible"
)

func (t RoomType) String() string {
	return string(t)
}

func (t RoomType) IsValid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeTwin, TypeSuite, TypeDeluxe, TypeAccessible:
		return true
	default:
		return false
	}
}

type Room struct {
	id           uuid.UUID
	number       string
	roomType     RoomType
	floor        int
	capacity     int
	nightlyRate  reservation.Money
	status       Status
	statusReason *string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewRoom(
	number string,
	roomType RoomType,
	floor, capacity int,
	nightlyRate reservation.Money,
	now time.Time,
) (*Room, error) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return nil, ErrEmptyNumber
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if floor < 0 {
		return nil, ErrInvalidFloor
	}
	if capacity <= 0 {
		return nil, ErrNonPositiveCap
	}

	return &Room{
		id:          uuid.New(),
		number:      trimmed,
		roomType:    roomType,
		floor:       floor,
		capacity:    capacity,
		nightlyRate: nightlyRate,
		status:      StatusAvailable,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number string,
	roomType RoomType,
	floor, capacity int,
	nightlyRate reservation.Money,
	status Status,
	statusReason *string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:           id,
		number:       number,
		roomType:     roomType,
		floor:        floor,
		capacity:     capacity,
		nightlyRate:  nightlyRate,
		status:       status,
		statusReason: statusReason,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ChangeStatus applies an operational status change with an optional reason
// (required in practice for maintenance and out_of_service, enforced at the
// handler layer).
func (r *Room) ChangeStatus(next Status, reason *string, now time.Time) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.statusReason = reason
	r.updatedAt = now
	return nil
}

func (r *Room) ChangeRate(rate reservation.Money, now time.Time) {
	r.nightlyRate = rate
	r.updatedAt = now
}

func (r *Room) ChangeCapacity(capacity int, now time.Time) error {
	if capacity <= 0 {
		return ErrNonPositiveCap
	}
	r.capacity = capacity
	r.updatedAt = now
	return nil
}

func (r *Room) Retire(now time.Time) {
	r.isActive = false
	r.updatedAt = now
}

func (r *Room) ID() uuid.UUID                  { return r.id }
func (r *Room) Number() string                 { return r.number }
func (r *Room) Type() RoomType                 { return r.roomType }
func (r *Room) Floor() int                     { return r.floor }
func (r *Room) Capacity() int                  { return r.capacity }
func (r *Room) NightlyRate() reservation.Money { return r.nightlyRate }
func (r *Room) Status() Status                 { return r.status }
func (r *Room) StatusReason() *string          { return r.statusReason }
func (r *Room) IsActive() bool                 { return r.isActive }
func (r *Room) CreatedAt() time.Time           { return r.createdAt }
func (r *Room) UpdatedAt() time.Time           { return r.updatedAt }
