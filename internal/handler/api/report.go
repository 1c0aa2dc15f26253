package api

import (
	"net/http"
	"strconv"
	"time"

	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportQueries       queries.ReportQueries
	notificationQueries queries.NotificationQueries
}

func NewReportHandler(reportQueries queries.ReportQueries, notificationQueries queries.NotificationQueries) *ReportHandler {
	return &ReportHandler{reportQueries: reportQueries, notificationQueries: notificationQueries}
}

// @Summary Occupancy report
// @Description Occupied room-nights against capacity over a date window
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} resdto.OccupancyReportResponse
// @Failure 400 {object} map[string]string
// @Router /reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	from, to, ok := parseReportWindow(c)
	if !ok {
		return
	}

	report, err := h.reportQueries.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOccupancyReport(report))
}

// @Summary Revenue report
// @Description Room revenue, collected payments and outstanding balances
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Window start (YYYY-MM-DD)"
// @Param to query string true "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} resdto.RevenueReportResponse
// @Failure 400 {object} map[string]string
// @Router /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, ok := parseReportWindow(c)
	if !ok {
		return
	}

	report, err := h.reportQueries.Revenue(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRevenueReport(report))
}

// @Summary List notification jobs
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param kind query string false "Filter by kind"
// @Param limit query int false "Max entries"
// @Success 200 {array} resdto.NotificationJobResponse
// @Router /notifications [get]
func (h *ReportHandler) ListNotifications(c *gin.Context) {
	var filter queries.NotificationFilter
	if raw := c.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := c.Query("kind"); raw != "" {
		filter.Kind = &raw
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	jobs, err := h.notificationQueries.List(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromNotificationList(jobs))
}

func parseReportWindow(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
		return time.Time{}, time.Time{}, false
	}
	if !to.After(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
