package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"hotel-backoffice/internal/infra/readstore"
	"hotel-backoffice/internal/infra/repository"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db store.Querier) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{db: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{db: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, db store.Querier) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	db store.Querier

	// Lazy-initialized repositories
	reservationRepo  shared.ReservationRepository
	roomRepo         shared.RoomRepository
	guestRepo        shared.GuestRepository
	staffRepo        shared.StaffRepository
	billRepo         shared.BillRepository
	taskRepo         shared.TaskRepository
	feedbackRepo     shared.FeedbackRepository
	inventoryRepo    shared.InventoryRepository
	notificationRepo shared.NotificationRepository
	stayRecordRepo   shared.StayRecordRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() store.Querier {
	return t.db
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.db)
	}
	return t.reservationRepo
}

func (t *pgTx) Rooms() shared.RoomRepository {
	if t.roomRepo == nil {
		t.roomRepo = repository.NewRoomRepository(t.db)
	}
	return t.roomRepo
}

func (t *pgTx) Guests() shared.GuestRepository {
	if t.guestRepo == nil {
		t.guestRepo = repository.NewGuestRepository(t.db)
	}
	return t.guestRepo
}

func (t *pgTx) Staff() shared.StaffRepository {
	if t.staffRepo == nil {
		t.staffRepo = repository.NewStaffRepository(t.db)
	}
	return t.staffRepo
}

func (t *pgTx) Bills() shared.BillRepository {
	if t.billRepo == nil {
		t.billRepo = repository.NewBillRepository(t.db)
	}
	return t.billRepo
}

func (t *pgTx) Tasks() shared.TaskRepository {
	if t.taskRepo == nil {
		t.taskRepo = repository.NewTaskRepository(t.db)
	}
	return t.taskRepo
}

func (t *pgTx) Feedback() shared.FeedbackRepository {
	if t.feedbackRepo == nil {
		t.feedbackRepo = repository.NewFeedbackRepository(t.db)
	}
	return t.feedbackRepo
}

func (t *pgTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = repository.NewInventoryRepository(t.db)
	}
	return t.inventoryRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.db)
	}
	return t.notificationRepo
}

func (t *pgTx) StayRecords() shared.StayRecordRepository {
	if t.stayRecordRepo == nil {
		t.stayRecordRepo = repository.NewStayRecordRepository(t.db)
	}
	return t.stayRecordRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{db: t.db}
	}
	return t.commandReads
}

type commandReads struct {
	db store.Querier

	// Lazy-initialized readstores
	roomStore        *readstore.RoomReadStore
	guestStore       *readstore.GuestReadStore
	reservationStore *readstore.ReservationReadStore
}

func (r *commandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	if r.roomStore == nil {
		r.roomStore = readstore.NewRoomReadStore(r.db)
	}

	room, err := r.roomStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.RoomSnapshot{
		ID:               room.ID,
		Number:           room.Number,
		Status:           room.Status,
		Capacity:         room.Capacity,
		NightlyRateCents: room.NightlyRateCents,
		IsActive:         room.IsActive,
	}, nil
}

func (r *commandReads) GuestByID(ctx context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	if r.guestStore == nil {
		r.guestStore = readstore.NewGuestReadStore(r.db)
	}

	guest, err := r.guestStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.GuestSnapshot{
		ID:       guest.ID,
		Email:    guest.Email,
		FullName: guest.FirstName + " " + guest.LastName,
		IsActive: guest.IsActive,
	}, nil
}

func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	if r.reservationStore == nil {
		r.reservationStore = readstore.NewReservationReadStore(r.db)
	}

	res, err := r.reservationStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &shared.ReservationSnapshot{
		ID:             res.ID,
		GuestID:        res.GuestID,
		RoomID:         res.RoomID,
		AssignedRoomID: res.AssignedRoomID,
		Status:         res.Status,
		CheckIn:        res.CheckIn,
		CheckOut:       res.CheckOut,
		IsActive:       res.IsActive,
	}, nil
}
