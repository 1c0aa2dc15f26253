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

type BillingHandler struct {
	billingCommands commands.BillingCommands
	billQueries     queries.BillQueries
}

func NewBillingHandler(billingCommands commands.BillingCommands, billQueries queries.BillQueries) *BillingHandler {
	return &BillingHandler{billingCommands: billingCommands, billQueries: billQueries}
}

// @Summary Open bill
// @Description Open the draft departure bill for a stay
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBillRequest true "Reservation to bill"
// @Success 201 {object} resdto.IDResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills [post]
func (h *BillingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.billingCommands.OpenDraft(c.Request.Context(), req.ReservationID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: id})
}

// @Summary Get bill
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} resdto.BillResponse
// @Failure 404 {object} map[string]string
// @Router /bills/{id} [get]
func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.billQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Bill not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromBillView(view))
}

// @Summary Get reservation bill
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.BillResponse
// @Failure 404 {object} map[string]string
// @Router /reservations/{id}/bill [get]
func (h *BillingHandler) GetByReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.billQueries.GetByReservationID(c.Request.Context(), id)
	if err != nil {
		writeNotFoundOrInternal(c, err, "Bill not found")
		return
	}

	c.JSON(http.StatusOK, resdto.FromBillView(view))
}

// @Summary Add line item
// @Description Add a charge to a draft bill
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param request body reqdto.AddLineItemRequest true "Line item"
// @Success 201 {object} resdto.IDResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bills/{id}/items [post]
func (h *BillingHandler) AddLineItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	itemID, err := h.billingCommands.AddLineItem(c.Request.Context(), id, commands.AddLineItemInput{
		Description:    req.Description,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: itemID})
}

// @Summary Remove line item
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param itemId path string true "Line item ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills/{id}/items/{itemId} [delete]
func (h *BillingHandler) RemoveLineItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return
	}

	if err := h.billingCommands.RemoveLineItem(c.Request.Context(), id, itemID); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Line item removed"})
}

// @Summary Issue bill
// @Description Finalize a draft bill and notify the guest
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills/{id}/issue [patch]
func (h *BillingHandler) Issue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.billingCommands.Issue(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Bill issued"})
}

// @Summary Record payment
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Param request body reqdto.RecordPaymentRequest true "Payment"
// @Success 201 {object} resdto.IDResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bills/{id}/payments [post]
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	paymentID, err := h.billingCommands.RecordPayment(c.Request.Context(), id, commands.RecordPaymentInput{
		AmountCents: req.AmountCents,
		Method:      req.Method,
		Reference:   req.Reference,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IDResponse{ID: paymentID})
}

// @Summary Void bill
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bill ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bills/{id}/void [patch]
func (h *BillingHandler) Void(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.billingCommands.Void(c.Request.Context(), id); err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.MessageResponse{Message: "Bill voided"})
}

func (h *BillingHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errs.Is(err, commands.ErrBillAlreadyOpen):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Reservation already has a bill",
		})
	case errs.Is(err, commands.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Bill can only be opened for an in-house or departed stay",
		})
	case errs.Is(err, commands.ErrBillNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Bill not found",
		})
	case errs.Is(err, commands.ErrLineItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Line item not found",
		})
	case errs.Is(err, commands.ErrBillNotEditable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Bill is not editable in its current status",
		})
	case errs.Is(err, commands.ErrBillNotPayable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Bill is not accepting payments",
		})
	case errs.Is(err, commands.ErrPaymentValidation), errs.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
