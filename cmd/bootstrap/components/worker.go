package components

import (
	"context"
	"log/slog"

	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/config"
	"hotel-backoffice/internal/usecase/shared"
	"hotel-backoffice/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewNotifier,
	),
	fx.Invoke(startNotifier),
)

func NewNotifier(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *worker.Notifier {
	return worker.NewNotifier(uow, worker.LogSender{}, clk, cfg.Worker.PollInterval, cfg.Worker.BatchSize)
}

func startNotifier(lc fx.Lifecycle, notifier *worker.Notifier, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := notifier.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("notification dispatcher stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
