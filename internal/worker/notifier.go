package worker

import (
	"context"
	"log/slog"
	"time"

	"hotel-backoffice/internal/domain/notification"
	"hotel-backoffice/internal/infra/observability"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/usecase/shared"

	"golang.org/x/sync/errgroup"
)

// Sender delivers a single notification over its channel. Implementations
// must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, job *notification.Job) error
}

// LogSender writes deliveries to the log instead of an external provider.
// It stands in until a real email/SMS integration is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, job *notification.Job) error {
	slog.Info("notification delivered",
		"kind", job.Kind().String(),
		"channel", job.Channel().String(),
		"recipient", job.Recipient())
	return nil
}

type Notifier struct {
	uow       shared.UnitOfWork
	sender    Sender
	clock     clock.Clock
	interval  time.Duration
	batchSize int
}

func NewNotifier(uow shared.UnitOfWork, sender Sender, clk clock.Clock, interval time.Duration, batchSize int) *Notifier {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 20
	}
	return &Notifier{uow: uow, sender: sender, clock: clk, interval: interval, batchSize: batchSize}
}

// Run polls for due jobs until the context is cancelled. Each batch is
// claimed with row locks so multiple dispatchers never double-send.
func (n *Notifier) Run(ctx context.Context) error {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := n.dispatchBatch(ctx); err != nil {
				slog.Error("notification batch failed", "error", err.Error())
			}
		}
	}
}

func (n *Notifier) dispatchBatch(ctx context.Context) error {
	now := n.clock.Now()

	return n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimDue(ctx, now, n.batchSize)
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)
		for _, job := range jobs {
			g.Go(func() error {
				n.deliver(gctx, job)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		// Outcomes persist in the claiming transaction, failures included.
		for _, job := range jobs {
			if err := tx.Notifications().Save(ctx, job); err != nil {
				return err
			}
		}
		return nil
	})
}

func (n *Notifier) deliver(ctx context.Context, job *notification.Job) {
	now := n.clock.Now()

	if err := n.sender.Send(ctx, job); err != nil {
		observability.ObserveDelivery(job.Channel().String(), "failed")
		if markErr := job.MarkFailed(err.Error(), now); markErr != nil {
			slog.Error("failed to mark notification", "job_id", job.ID(), "error", markErr.Error())
		}
		slog.Warn("notification delivery failed",
			"job_id", job.ID(),
			"attempts", job.Attempts(),
			"error", err.Error())
		return
	}

	observability.ObserveDelivery(job.Channel().String(), "sent")
	if err := job.MarkSent(now); err != nil {
		slog.Error("failed to mark notification sent", "job_id", job.ID(), "error", err.Error())
	}
}
