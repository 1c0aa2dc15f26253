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

type InventoryHandler struct {
	inventoryCommands commands.InventoryCommands
	inventoryQueries  queries.InventoryQueries
}

func NewInventoryHandler(inventoryCommands commands.InventoryCommands, inventoryQueries queries.InventoryQueries) *InventoryHandler {
	return &InventoryHandler{inventoryCommands: inventoryCommands, inventoryQueries: inventoryQueries}
}

// @Summary Create inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req reqdto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.inventoryCommands.CreateItem(c.Request.Context(), commands.CreateItemInput{
		Name:             req.Name,
		SKU:              req.SKU,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get inventory item
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} resdto.InventoryItemResponse
// @Failure 404 {object} map[string]string
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.inventoryQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Inventory item not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromInventoryItem(view))
}

// @Summary List inventory
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.InventoryItemResponse
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventoryQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromInventoryList(items))
}

// @Summary Adjust stock
// @Description Apply a signed stock delta with an audit reason
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.AdjustStockRequest true "Adjustment"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /inventory/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	staffID, ok := requireStaffID(c)
	if !ok {
		return
	}

	var req reqdto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.inventoryCommands.Adjust(c.Request.Context(), id, commands.AdjustStockInput{
		Delta:   req.Delta,
		Reason:  req.Reason,
		StaffID: staffID,
	}); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Stock adjusted"})
}

// @Summary Change reorder threshold
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param request body reqdto.ChangeThresholdRequest true "Threshold"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /inventory/{id}/threshold [patch]
func (h *InventoryHandler) ChangeThreshold(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.ChangeThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.inventoryCommands.ChangeThreshold(c.Request.Context(), id, req.ReorderThreshold); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Threshold updated"})
}

// @Summary List stock adjustments
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param limit query int false "Max entries"
// @Success 200 {array} resdto.InventoryAdjustmentResponse
// @Router /inventory/{id}/adjustments [get]
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.inventoryQueries.ListAdjustments(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAdjustmentList(items))
}

func (h *InventoryHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Inventory item not found",
		})
	case errs.Is(err, commands.ErrSKUTaken):
		c.JSON(http.StatusConflict, gin.H{
			"error": "SKU already registered",
		})
	case errs.Is(err, commands.ErrNegativeStock),
		errs.Is(err, commands.ErrEmptyAdjustment),
		errs.Is(err, commands.ErrAdjustmentReason),
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
