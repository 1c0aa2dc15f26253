package api

import (
	"net/http"
	"strconv"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackCommands commands.FeedbackCommands
	feedbackQueries  queries.FeedbackQueries
}

func NewFeedbackHandler(feedbackCommands commands.FeedbackCommands, feedbackQueries queries.FeedbackQueries) *FeedbackHandler {
	return &FeedbackHandler{feedbackCommands: feedbackCommands, feedbackQueries: feedbackQueries}
}

// @Summary Submit feedback
// @Description Record guest feedback for a completed stay
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.feedbackCommands.Submit(c.Request.Context(), commands.SubmitFeedbackInput{
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errs.Is(err, commands.ErrStayNotCompleted):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Feedback requires a completed stay",
			})
		case errs.Is(err, commands.ErrFeedbackDuplicate):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Feedback already submitted for this reservation",
			})
		case errs.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary List recent feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries"
// @Success 200 {array} resdto.FeedbackResponse
// @Router /feedback [get]
func (h *FeedbackHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.feedbackQueries.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromFeedbackList(items))
}

// @Summary Room rating averages
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RoomRatingResponse
// @Router /feedback/rooms [get]
func (h *FeedbackHandler) RoomRatings(c *gin.Context) {
	items, err := h.feedbackQueries.RoomRatings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomRatings(items))
}
