package shared

import (
	"context"
	"time"

	"hotel-backoffice/internal/domain/billing"
	"hotel-backoffice/internal/domain/feedback"
	"hotel-backoffice/internal/domain/guest"
	"hotel-backoffice/internal/domain/inventory"
	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/domain/reservation"
	"hotel-backoffice/internal/domain/room"
	"hotel-backoffice/internal/domain/staff"
	"hotel-backoffice/internal/domain/task"
	"hotel-backoffice/internal/infra/store"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error
	// CommandReads: validation reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Rooms() RoomRepository
	Guests() GuestRepository
	Staff() StaffRepository
	Bills() BillRepository
	Tasks() TaskRepository
	Feedback() FeedbackRepository
	Inventory() InventoryRepository
	Notifications() NotificationRepository
	StayRecords() StayRecordRepository
	Reads() CommandReads
	DB() store.Querier
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*GuestSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
}

// Minimal snapshots for command-side validation
type RoomSnapshot struct {
	ID               uuid.UUID
	Number           string
	Status           string
	Capacity         int
	NightlyRateCents int64
	IsActive         bool
}

type GuestSnapshot struct {
	ID       uuid.UUID
	Email    string
	FullName string
	IsActive bool
}

type ReservationSnapshot struct {
	ID             uuid.UUID
	GuestID        uuid.UUID
	RoomID         uuid.UUID
	AssignedRoomID *uuid.UUID
	Status         string
	CheckIn        time.Time
	CheckOut       time.Time
	IsActive       bool
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) (uuid.UUID, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	// FindByIDForUpdate loads the aggregate under a row lock so the
	// lifecycle transition is applied against current state.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// HasBlockingOverlap reports whether any other active reservation in a
	// blocking status occupies the room for an overlapping stay.
	HasBlockingOverlap(ctx context.Context, roomID uuid.UUID, stay reservation.StayPeriod, excludeID *uuid.UUID) (bool, error)
}

type RoomRepository interface {
	Create(ctx context.Context, r *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, r *room.Room) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type GuestRepository interface {
	Create(ctx context.Context, g *guest.Guest) (uuid.UUID, error)
	Update(ctx context.Context, g *guest.Guest) error
	FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error)
}

type StaffRepository interface {
	Create(ctx context.Context, s *staff.Staff) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*staff.Staff, error)
	UpdateLastLogin(ctx context.Context, staffID uuid.UUID, at time.Time) error
}

type BillRepository interface {
	Create(ctx context.Context, b *billing.Bill) (uuid.UUID, error)
	// Save persists the bill status plus any line items and payments added
	// since it was loaded.
	Save(ctx context.Context, b *billing.Bill) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Bill, error)
	FindByReservationID(ctx context.Context, reservationID uuid.UUID) (*billing.Bill, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) (uuid.UUID, error)
	Update(ctx context.Context, t *task.Task) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*task.Task, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, f *feedback.Feedback) (uuid.UUID, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, item *inventory.Item) (uuid.UUID, error)
	Update(ctx context.Context, item *inventory.Item) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Item, error)
	RecordAdjustment(ctx context.Context, itemID uuid.UUID, delta int, reason string, staffID uuid.UUID, at time.Time) error
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, job *notification.Job) error
	// ClaimDue locks up to limit queued jobs whose schedule has passed,
	// skipping rows held by other dispatchers.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*notification.Job, error)
	Save(ctx context.Context, job *notification.Job) error
}

type StayRecordRepository interface {
	CreateCheckIn(ctx context.Context, reservationID, roomID, staffID uuid.UUID, at time.Time) (uuid.UUID, error)
	CompleteCheckOut(ctx context.Context, reservationID, staffID uuid.UUID, at time.Time) error
}
