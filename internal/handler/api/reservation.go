package api

import (
	"net/http"
	"strconv"
	"time"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	checkInOutCommands  commands.CheckInOutCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	checkInOutCommands commands.CheckInOutCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		checkInOutCommands:  checkInOutCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Create a new pending reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reservationCommands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Reservation not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List reservations with filters and keyset pagination
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param guest_id query string false "Filter by guest"
// @Param room_id query string false "Filter by room"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Stay overlaps from (YYYY-MM-DD)"
// @Param date_to query string false "Stay overlaps to (YYYY-MM-DD)"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	var after *queries.Cursor
	if cursor := c.Query("after"); cursor != "" {
		after = &queries.Cursor{After: cursor}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, next, err := h.reservationQueries.List(c.Request.Context(), filter, after, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid list parameters",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Update reservation
// @Description Edit booking details of a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to update"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.Update(c.Request.Context(), id, req.ToInput()); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Reservation updated"})
}

// @Summary Update reservation status
// @Description Apply a lifecycle transition to the reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Target status"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var err error
	switch req.Status {
	case "cancelled":
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		err = h.reservationCommands.Cancel(c.Request.Context(), id, reason)
	default:
		err = h.reservationCommands.UpdateStatus(c.Request.Context(), id, req.Status)
	}
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Status updated"})
}

// @Summary Confirm reservation
// @Description Confirm a pending reservation, re-checking availability
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/confirm [patch]
func (h *ReservationHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.reservationCommands.Confirm(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Reservation confirmed"})
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancellation reason"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [patch]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.Cancel(c.Request.Context(), id, req.Reason); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Reservation cancelled"})
}

// @Summary Assign room
// @Description Assign a concrete room to the reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AssignRoomRequest true "Room to assign"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/assign-room [post]
func (h *ReservationHandler) AssignRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AssignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.AssignRoom(c.Request.Context(), id, req.RoomID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Room assigned"})
}

// @Summary Check in
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	staffID, ok := requireStaffID(c)
	if !ok {
		return
	}

	if err := h.checkInOutCommands.CheckIn(c.Request.Context(), id, staffID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Checked in"})
}

// @Summary Check out
// @Description Complete the stay and open the departure bill
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/check-out [post]
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	staffID, ok := requireStaffID(c)
	if !ok {
		return
	}

	billID, err := h.checkInOutCommands.CheckOut(c.Request.Context(), id, staffID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.IDResponse{ID: billID})
}

// @Summary Delete reservation
// @Description Soft-delete a terminal reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.DeleteReservationRequest true "Deletion reason"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.DeleteReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.reservationCommands.SoftDelete(c.Request.Context(), id, req.Reason); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Reservation deleted"})
}

// @Summary Check room availability
// @Description Report whether a room is free for a stay window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *ReservationHandler) CheckAvailability(c *gin.Context) {
	roomID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid availability query",
		})
		return
	}
	if !q.CheckOut.After(q.CheckIn) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "check_out must be after check_in",
		})
		return
	}

	av, err := h.reservationQueries.CheckAvailability(c.Request.Context(), roomID, q.CheckIn, q.CheckOut)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailability(av))
}

// @Summary List available rooms
// @Description List rooms free for the whole stay window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param room_type query string false "Filter by room type"
// @Param min_capacity query int false "Minimum capacity"
// @Success 200 {array} resdto.RoomListItemResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/available [get]
func (h *ReservationHandler) ListAvailableRooms(c *gin.Context) {
	var q reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid availability query",
		})
		return
	}
	if !q.CheckOut.After(q.CheckIn) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "check_out must be after check_in",
		})
		return
	}

	rooms, err := h.reservationQueries.ListAvailableRooms(c.Request.Context(), q.CheckIn, q.CheckOut, q.RoomType, q.MinCapacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomList(rooms))
}

func (h *ReservationHandler) parseListFilter(c *gin.Context) (queries.ReservationFilter, bool) {
	var filter queries.ReservationFilter

	if raw := c.Query("guest_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest_id"})
			return filter, false
		}
		filter.GuestID = &id
	}
	if raw := c.Query("room_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room_id"})
			return filter, false
		}
		filter.RoomID = &id
	}
	if raw := c.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from"})
			return filter, false
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to"})
			return filter, false
		}
		filter.DateTo = &t
	}
	return filter, true
}

func (h *ReservationHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errs.Is(err, commands.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Guest not found",
		})
	case errs.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errs.Is(err, commands.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room is not available for the requested stay",
		})
	case errs.Is(err, commands.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Illegal status transition",
		})
	case errs.Is(err, commands.ErrNotDeletable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation cannot be deleted in its current status",
		})
	case errs.Is(err, commands.ErrRoomNotReady):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room is not ready for check-in",
		})
	case errs.Is(err, commands.ErrInvalidStay),
		errs.Is(err, commands.ErrCapacityExceeded),
		errs.Is(err, commands.ErrRoomNotSellable),
		errs.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
