package api

import (
	"net/http"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomCommands commands.RoomCommands
	roomQueries  queries.RoomQueries
	taskQueries  queries.TaskQueries
}

func NewRoomHandler(roomCommands commands.RoomCommands, roomQueries queries.RoomQueries, taskQueries queries.TaskQueries) *RoomHandler {
	return &RoomHandler{
		roomCommands: roomCommands,
		roomQueries:  roomQueries,
		taskQueries:  taskQueries,
	}
}

// @Summary Create room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.roomCommands.Create(c.Request.Context(), commands.CreateRoomInput{
		Number:           req.Number,
		Type:             req.Type,
		Floor:            req.Floor,
		Capacity:         req.Capacity,
		NightlyRateCents: req.NightlyRateCents,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.roomQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Room not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param room_type query string false "Filter by type"
// @Success 200 {array} resdto.RoomListItemResponse
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var filter queries.RoomFilter
	if raw := c.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := c.Query("room_type"); raw != "" {
		filter.RoomType = &raw
	}

	rooms, err := h.roomQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomList(rooms))
}

// @Summary Update room
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rooms/{id} [patch]
func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.roomCommands.Update(c.Request.Context(), id, commands.UpdateRoomInput{
		Capacity:         req.Capacity,
		NightlyRateCents: req.NightlyRateCents,
	}); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Room updated"})
}

// @Summary Change room status
// @Description Move the room through its operational cycle
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.ChangeRoomStatusRequest true "Target status"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rooms/{id}/status [patch]
func (h *RoomHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ChangeRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.roomCommands.ChangeStatus(c.Request.Context(), id, req.Status, req.Reason); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Room status updated"})
}

// @Summary Retire room
// @Description Take the room out of the sellable pool permanently
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Retire(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.roomCommands.Retire(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Room retired"})
}

// @Summary List room tasks
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.TaskResponse
// @Router /rooms/{id}/tasks [get]
func (h *RoomHandler) ListTasks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.taskQueries.List(c.Request.Context(), queries.TaskFilter{RoomID: &id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTaskList(tasks))
}

func (h *RoomHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errs.Is(err, commands.ErrRoomNumberTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room number already exists",
		})
	case errs.Is(err, commands.ErrIllegalRoomStatus):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Room status transition not allowed",
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
}
