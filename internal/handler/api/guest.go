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

type GuestHandler struct {
	guestCommands commands.GuestCommands
	guestQueries  queries.GuestQueries
}

func NewGuestHandler(guestCommands commands.GuestCommands, guestQueries queries.GuestQueries) *GuestHandler {
	return &GuestHandler{guestCommands: guestCommands, guestQueries: guestQueries}
}

// @Summary Create guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateGuestRequest true "Guest"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /guests [post]
func (h *GuestHandler) Create(c *gin.Context) {
	var req reqdto.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.guestCommands.Create(c.Request.Context(), commands.CreateGuestInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get guest
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} resdto.GuestResponse
// @Failure 404 {object} map[string]string
// @Router /guests/{id} [get]
func (h *GuestHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.guestQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Guest not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromGuestView(view))
}

// @Summary Search guests
// @Description Search guests by name or email with keyset pagination
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.GuestListResponse
// @Router /guests [get]
func (h *GuestHandler) Search(c *gin.Context) {
	var after *queries.Cursor
	if cursor := c.Query("after"); cursor != "" {
		after = &queries.Cursor{After: cursor}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, next, err := h.guestQueries.Search(c.Request.Context(), c.Query("q"), after, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid search parameters",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromGuestList(items, next))
}

// @Summary Update guest
// @Tags guests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Param request body reqdto.UpdateGuestRequest true "Fields to update"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /guests/{id} [patch]
func (h *GuestHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.guestCommands.Update(c.Request.Context(), id, commands.UpdateGuestInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		DocumentID: req.DocumentID,
		Notes:      req.Notes,
	}); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Guest updated"})
}

// @Summary Delete guest
// @Description Soft-delete a guest profile
// @Tags guests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Guest ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Router /guests/{id} [delete]
func (h *GuestHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.guestCommands.Delete(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Guest deleted"})
}

func (h *GuestHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Guest not found",
		})
	case errs.Is(err, commands.ErrGuestEmailTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Email is already registered",
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
