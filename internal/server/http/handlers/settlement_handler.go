package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/server/http/dto"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// SettlementHandler manages payout endpoints.
type SettlementHandler struct {
	facade SettlementFacade
}

// NewSettlementHandler constructs SettlementHandler.
func NewSettlementHandler(facade SettlementFacade) *SettlementHandler {
	return &SettlementHandler{facade: facade}
}

// Derive handles POST /api/settlements. Admin only.
func (h *SettlementHandler) Derive(c *gin.Context) {
	var req dto.DeriveSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.RequestID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var deduction *usecase.Deduction
	if req.Deduction != nil {
		deduction = &usecase.Deduction{Amount: req.Deduction.Amount, Reason: req.Deduction.Reason}
	}

	settlement, err := h.facade.DeriveSettlement(c.Request.Context(), req.RequestID, deduction)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotSettleable):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrInvalidDeduction):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toSettlementResponse(settlement))
}

// List handles GET /api/settlements.
func (h *SettlementHandler) List(c *gin.Context) {
	settlements, err := h.facade.Settlements(c.Request.Context(), CurrentActor(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(settlements) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.SettlementResponse, 0, len(settlements))
	for i := range settlements {
		response = append(response, toSettlementResponse(&settlements[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/settlements/:id.
func (h *SettlementHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	settlement, err := h.facade.Settlement(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		settlementError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettlementResponse(settlement))
}

// GetByRequest handles GET /api/requests/:id/settlement.
func (h *SettlementHandler) GetByRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	settlement, err := h.facade.SettlementForRequest(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		settlementError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettlementResponse(settlement))
}

// UpdatePayment handles PATCH /api/settlements/:id/payment. Admin only.
func (h *SettlementHandler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body dto.PaymentUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	target, valid := model.ParsePaymentStatus(body.Status)
	if !valid {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	settlement, err := h.facade.AdvancePayment(c.Request.Context(), id, target)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidPaymentAdvance):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toSettlementResponse(settlement))
}

func settlementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toSettlementResponse(s *model.Settlement) dto.SettlementResponse {
	return dto.SettlementResponse{
		ID:              s.ID,
		RequestID:       s.RequestID,
		UserID:          s.UserID,
		FinalAmount:     s.FinalAmount,
		DeductionAmount: s.DeductionAmount,
		DeductionReason: s.DeductionReason,
		NetAmount:       s.NetAmount,
		PaymentStatus:   string(s.PaymentStatus),
		CreatedAt:       s.CreatedAt,
	}
}
