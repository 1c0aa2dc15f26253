package api

import (
	"net/http"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/internal/pkg/errs"
	"hotel-backoffice/internal/usecase/commands"
	"hotel-backoffice/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	taskCommands commands.TaskCommands
	taskQueries  queries.TaskQueries
}

func NewTaskHandler(taskCommands commands.TaskCommands, taskQueries queries.TaskQueries) *TaskHandler {
	return &TaskHandler{taskCommands: taskCommands, taskQueries: taskQueries}
}

// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTaskRequest true "Task"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req reqdto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.taskCommands.Create(c.Request.Context(), commands.CreateTaskInput{
		RoomID:      req.RoomID,
		Kind:        req.Kind,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} resdto.TaskResponse
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.taskQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Task not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromTaskView(view))
}

// @Summary List tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param room_id query string false "Filter by room"
// @Param kind query string false "Filter by kind"
// @Param status query string false "Filter by status"
// @Param assignee_id query string false "Filter by assignee"
// @Success 200 {array} resdto.TaskResponse
// @Failure 400 {object} map[string]string
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var filter queries.TaskFilter
	if raw := c.Query("room_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room_id"})
			return
		}
		filter.RoomID = &id
	}
	if raw := c.Query("kind"); raw != "" {
		filter.Kind = &raw
	}
	if raw := c.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := c.Query("assignee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee_id"})
			return
		}
		filter.AssigneeID = &id
	}

	tasks, err := h.taskQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTaskList(tasks))
}

// @Summary Assign task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.AssignTaskRequest true "Assignee"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Router /tasks/{id}/assign [post]
func (h *TaskHandler) Assign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.taskCommands.Assign(c.Request.Context(), id, req.StaffID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Task assigned"})
}

// @Summary Update task status
// @Description Start, complete or cancel the task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.UpdateReservationStatusRequest true "Target status"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=in_progress completed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	var err error
	switch req.Status {
	case "in_progress":
		err = h.taskCommands.Start(c.Request.Context(), id)
	case "completed":
		err = h.taskCommands.Complete(c.Request.Context(), id)
	case "cancelled":
		err = h.taskCommands.Cancel(c.Request.Context(), id)
	}
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Task status updated"})
}

// @Summary Change task priority
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body reqdto.ChangeTaskPriorityRequest true "Priority"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tasks/{id}/priority [patch]
func (h *TaskHandler) ChangePriority(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ChangeTaskPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.taskCommands.ChangePriority(c.Request.Context(), id, req.Priority); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Task priority updated"})
}

func (h *TaskHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Task not found",
		})
	case errs.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errs.Is(err, commands.ErrStaffNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Staff member not found",
		})
	case errs.Is(err, commands.ErrTaskUnassigned):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Task must be assigned before starting",
		})
	case errs.Is(err, commands.ErrTaskTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Task status transition not allowed",
		})
	case errs.Is(err, commands.ErrInvalidPriority), errs.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
