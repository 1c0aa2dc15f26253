package components

import (
	"hotel-backoffice/internal/handler"
	"hotel-backoffice/internal/handler/api"
	"hotel-backoffice/internal/handler/middleware"
	"hotel-backoffice/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewRoomHandler,
		api.NewGuestHandler,
		api.NewBillingHandler,
		api.NewTaskHandler,
		api.NewFeedbackHandler,
		api.NewInventoryHandler,
		api.NewReportHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}

func NewHandlers(
	auth *api.AuthHandler,
	reservation *api.ReservationHandler,
	room *api.RoomHandler,
	guest *api.GuestHandler,
	billing *api.BillingHandler,
	task *api.TaskHandler,
	feedback *api.FeedbackHandler,
	inventory *api.InventoryHandler,
	report *api.ReportHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:        auth,
		Reservation: reservation,
		Room:        room,
		Guest:       guest,
		Billing:     billing,
		Task:        task,
		Feedback:    feedback,
		Inventory:   inventory,
		Report:      report,
	}
}
