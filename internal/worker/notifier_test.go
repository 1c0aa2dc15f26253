//go:build unit

package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/infra/store"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/usecase/shared"
	"hotel-backoffice/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

// memNotificationRepo snapshots job outcomes on Save so assertions never
// read fields the dispatcher goroutines are still mutating.
type memNotificationRepo struct {
	mu       sync.Mutex
	jobs     []*notification.Job
	statuses []notification.Status
	attempts []int
}

func (r *memNotificationRepo) Enqueue(_ context.Context, job *notification.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	r.statuses = append(r.statuses, job.Status())
	r.attempts = append(r.attempts, job.Attempts())
	return nil
}

func (r *memNotificationRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]*notification.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*notification.Job
	for i, job := range r.jobs {
		if r.statuses[i] == notification.StatusQueued && !job.ScheduledAt().After(now) {
			due = append(due, job)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

func (r *memNotificationRepo) Save(_ context.Context, job *notification.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, j := range r.jobs {
		if j.ID() == job.ID() {
			r.statuses[i] = job.Status()
			r.attempts[i] = job.Attempts()
		}
	}
	return nil
}

func (r *memNotificationRepo) statusOf(i int) notification.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statuses[i]
}

func (r *memNotificationRepo) attemptsOf(i int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts[i]
}

// notifierTx satisfies shared.Tx for the single repository the dispatcher
// touches; any other access is a test bug and panics.
type notifierTx struct {
	shared.Tx
	notifications *memNotificationRepo
}

func (t *notifierTx) Notifications() shared.NotificationRepository {
	return t.notifications
}

type notifierUoW struct {
	tx *notifierTx
}

func (u *notifierUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *notifierUoW) WithinReadOnly(context.Context, func(context.Context, store.Querier) error) error {
	panic("not used")
}

func (u *notifierUoW) WithDB(context.Context, func(context.Context, store.Querier) error) error {
	panic("not used")
}

func (u *notifierUoW) CommandReads() shared.CommandReads {
	panic("not used")
}

type recordingSender struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (s *recordingSender) Send(_ context.Context, job *notification.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unreachable")
	}
	s.sent = append(s.sent, job.Recipient())
	return nil
}

func (s *recordingSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func queueJob(t *testing.T, repo *memNotificationRepo, recipient string, scheduledAt time.Time) {
	t.Helper()
	job, err := notification.NewJob(
		notification.KindReservationConfirmed,
		notification.ChannelEmail,
		recipient,
		[]byte(`{"reservation_id":"test"}`),
		scheduledAt,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Enqueue(context.Background(), job))
}

func runNotifier(t *testing.T, repo *memNotificationRepo, sender worker.Sender) (*clock.MockClock, context.CancelFunc, chan error) {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	n := worker.NewNotifier(&notifierUoW{tx: &notifierTx{notifications: repo}}, sender,
		clk, 5*time.Millisecond, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()
	return clk, cancel, done
}

func TestNotifierDispatch(t *testing.T) {
	t.Run("delivers due jobs and marks them sent", func(t *testing.T) {
		repo := &memNotificationRepo{}
		queueJob(t, repo, "ada@example.com", testNow.Add(-time.Minute))
		queueJob(t, repo, "grace@example.com", testNow.Add(-time.Minute))
		sender := &recordingSender{}

		_, cancel, done := runNotifier(t, repo, sender)
		defer cancel()

		require.Eventually(t, func() bool {
			return sender.sentCount() == 2
		}, 2*time.Second, 5*time.Millisecond)

		require.Eventually(t, func() bool {
			return repo.statusOf(0) == notification.StatusSent && repo.statusOf(1) == notification.StatusSent
		}, 2*time.Second, 5*time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("leaves future jobs alone", func(t *testing.T) {
		repo := &memNotificationRepo{}
		queueJob(t, repo, "ada@example.com", testNow.Add(time.Hour))
		sender := &recordingSender{}

		_, cancel, done := runNotifier(t, repo, sender)

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, 0, sender.sentCount())
		assert.Equal(t, notification.StatusQueued, repo.statusOf(0))

		cancel()
		<-done
	})

	t.Run("retries failures until the attempt budget runs out", func(t *testing.T) {
		repo := &memNotificationRepo{}
		queueJob(t, repo, "ada@example.com", testNow.Add(-time.Minute))
		sender := &recordingSender{fail: true}

		clk, cancel, done := runNotifier(t, repo, sender)
		defer cancel()

		// Each failure reschedules the job one minute out; step the clock
		// past the backoff so the next tick claims it again.
		require.Eventually(t, func() bool {
			clk.Add(2 * time.Minute)
			return repo.statusOf(0) == notification.StatusFailed
		}, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, notification.MaxAttempts, repo.attemptsOf(0))

		cancel()
		<-done
	})
}
