package components

import (
	"hotel-backoffice/internal/infra/cache"
	"hotel-backoffice/internal/pkg/clock"
	"hotel-backoffice/internal/pkg/config"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewCheckInOutCommands,
		commands.NewRoomCommands,
		commands.NewGuestCommands,
		commands.NewBillingCommands,
		commands.NewTaskCommands,
		commands.NewFeedbackCommands,
		commands.NewInventoryCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomQueries,
		queries.NewGuestQueries,
		queries.NewBillQueries,
		queries.NewTaskQueries,
		queries.NewFeedbackQueries,
		queries.NewInventoryQueries,
		queries.NewNotificationQueries,
		NewReportQueries,
	),
)

func NewReportQueries(repo queries.ReportViewRepo, c *cache.Cache, cfg config.Config) queries.ReportQueries {
	return queries.NewReportQueries(repo, c, cfg.Redis.CacheTTL)
}
