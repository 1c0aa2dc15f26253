package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hotel-backoffice/internal/domain/staff"
	"hotel-backoffice/internal/handler/api"
	"hotel-backoffice/internal/handler/middleware"
	"hotel-backoffice/internal/infra/observability"
	"hotel-backoffice/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Room        *api.RoomHandler
	Guest       *api.GuestHandler
	Billing     *api.BillingHandler
	Task        *api.TaskHandler
	Feedback    *api.FeedbackHandler
	Inventory   *api.InventoryHandler
	Report      *api.ReportHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, registry *prometheus.Registry) {
	setupMiddleware(engine, cfg, rateLimiter)
	setupRoutes(engine, handlers, authMiddleware, registry)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, rateLimiter *middleware.RateLimiter) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(rateLimiter.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, registry *prometheus.Registry) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(observability.MetricsHandler(registry)))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	managerOnly := authMiddleware.RequireRoleAtLeast(staff.RoleManager)
	adminOnly := authMiddleware.RequireRoleAtLeast(staff.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodPost, Path: "/staff", Handler: h.Auth.RegisterStaff, Mw: []gin.HandlerFunc{adminOnly}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		reservations.Use(requireAuth)
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservation.Update},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Reservation.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.Delete, Mw: []gin.HandlerFunc{managerOnly}},
				{Method: http.MethodPatch, Path: "/:id/confirm", Handler: h.Reservation.Confirm},
				{Method: http.MethodPatch, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Reservation.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/assign-room", Handler: h.Reservation.AssignRoom},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: h.Reservation.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: h.Reservation.CheckOut},
				{Method: http.MethodGet, Path: "/:id/bill", Handler: h.Billing.GetByReservation},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(requireAuth)
		{
			addRoutes(rooms, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Room.Create, Mw: []gin.HandlerFunc{managerOnly}},
				{Method: http.MethodGet, Path: "", Handler: h.Room.List},
				{Method: http.MethodGet, Path: "/available", Handler: h.Reservation.ListAvailableRooms},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Room.Update, Mw: []gin.HandlerFunc{managerOnly}},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Room.Retire, Mw: []gin.HandlerFunc{adminOnly}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Room.ChangeStatus},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Reservation.CheckAvailability},
				{Method: http.MethodGet, Path: "/:id/tasks", Handler: h.Room.ListTasks},
			})
		}

		guests := apiGroup.Group("/guests")
		guests.Use(requireAuth)
		{
			addRoutes(guests, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Guest.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Guest.Search},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Guest.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Guest.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Guest.Delete, Mw: []gin.HandlerFunc{managerOnly}},
			})
		}

		bills := apiGroup.Group("/bills")
		bills.Use(requireAuth)
		{
			addRoutes(bills, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Billing.Create},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Billing.Get},
				{Method: http.MethodPost, Path: "/:id/items", Handler: h.Billing.AddLineItem},
				{Method: http.MethodDelete, Path: "/:id/items/:itemId", Handler: h.Billing.RemoveLineItem},
				{Method: http.MethodPatch, Path: "/:id/issue", Handler: h.Billing.Issue},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: h.Billing.RecordPayment},
				{Method: http.MethodPatch, Path: "/:id/void", Handler: h.Billing.Void, Mw: []gin.HandlerFunc{managerOnly}},
			})
		}

		tasks := apiGroup.Group("/tasks")
		tasks.Use(requireAuth)
		{
			addRoutes(tasks, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Task.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Task.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Task.Get},
				{Method: http.MethodPost, Path: "/:id/assign", Handler: h.Task.Assign},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Task.UpdateStatus},
				{Method: http.MethodPatch, Path: "/:id/priority", Handler: h.Task.ChangePriority},
			})
		}

		feedback := apiGroup.Group("/feedback")
		feedback.Use(requireAuth)
		{
			addRoutes(feedback, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Feedback.Submit},
				{Method: http.MethodGet, Path: "", Handler: h.Feedback.ListRecent},
				{Method: http.MethodGet, Path: "/rooms", Handler: h.Feedback.RoomRatings},
			})
		}

		inventory := apiGroup.Group("/inventory")
		inventory.Use(requireAuth)
		{
			addRoutes(inventory, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Inventory.Create, Mw: []gin.HandlerFunc{managerOnly}},
				{Method: http.MethodGet, Path: "", Handler: h.Inventory.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Inventory.Get},
				{Method: http.MethodPost, Path: "/:id/adjust", Handler: h.Inventory.Adjust},
				{Method: http.MethodPatch, Path: "/:id/threshold", Handler: h.Inventory.ChangeThreshold, Mw: []gin.HandlerFunc{managerOnly}},
				{Method: http.MethodGet, Path: "/:id/adjustments", Handler: h.Inventory.ListAdjustments},
			})
		}

		reports := apiGroup.Group("/reports")
		reports.Use(requireAuth, managerOnly)
		{
			addRoutes(reports, []route{
				{Method: http.MethodGet, Path: "/occupancy", Handler: h.Report.Occupancy},
				{Method: http.MethodGet, Path: "/revenue", Handler: h.Report.Revenue},
			})
		}

		notifications := apiGroup.Group("/notifications")
		notifications.Use(requireAuth)
		{
			addRoutes(notifications, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Report.ListNotifications},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
