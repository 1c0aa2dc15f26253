package components

import (
	"hotel-backoffice/internal/infra/readstore"
	"hotel-backoffice/internal/infra/uow"
	"hotel-backoffice/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read stores back the query side only; the write side goes
		// through the unit of work, which binds repositories to its
		// own transaction.
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewRoomReadStore,
			fx.As(new(queries.RoomViewRepo)),
		),
		fx.Annotate(
			readstore.NewGuestReadStore,
			fx.As(new(queries.GuestViewRepo)),
		),
		fx.Annotate(
			readstore.NewBillReadStore,
			fx.As(new(queries.BillViewRepo)),
		),
		fx.Annotate(
			readstore.NewTaskReadStore,
			fx.As(new(queries.TaskViewRepo)),
		),
		fx.Annotate(
			readstore.NewFeedbackReadStore,
			fx.As(new(queries.FeedbackViewRepo)),
		),
		fx.Annotate(
			readstore.NewInventoryReadStore,
			fx.As(new(queries.InventoryViewRepo)),
		),
		fx.Annotate(
			readstore.NewNotificationReadStore,
			fx.As(new(queries.NotificationViewRepo)),
		),
		fx.Annotate(
			readstore.NewReportReadStore,
			fx.As(new(queries.ReportViewRepo)),
		),
	),
)
