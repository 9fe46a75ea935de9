package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/server/http/dto"
)

// PriceHandler serves the daily price table.
type PriceHandler struct {
	facade PriceFacade
}

// NewPriceHandler constructs PriceHandler.
func NewPriceHandler(facade PriceFacade) *PriceHandler {
	return &PriceHandler{facade: facade}
}

// Current handles GET /api/gold-price/current.
func (h *PriceHandler) Current(c *gin.Context) {
	table, source := h.facade.CurrentPrice(c.Request.Context())
	c.JSON(http.StatusOK, dto.PriceResponse{
		PriceTableBody: toPriceBody(table),
		Source:         string(source),
	})
}

// History handles GET /api/gold-price/history.
func (h *PriceHandler) History(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	rows, err := h.facade.PriceHistory(c.Request.Context(), limit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(rows) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PriceTableBody, 0, len(rows))
	for i := range rows {
		response = append(response, toPriceBody(&rows[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Save handles POST /api/gold-price. Admin only.
func (h *PriceHandler) Save(c *gin.Context) {
	var req dto.PriceTableBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	table := &model.PriceTable{
		Porcelain:     req.Porcelain,
		InlaySmall:    req.InlaySmall,
		Inlay:         req.Inlay,
		CrownPlatinum: req.CrownPlatinum,
		CrownStandard: req.CrownStandard,
		CrownAlloy:    req.CrownAlloy,
	}
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		table.Date = day
	}

	stored, err := h.facade.SavePrice(c.Request.Context(), table)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPrice):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toPriceBody(stored))
}

func toPriceBody(table *model.PriceTable) dto.PriceTableBody {
	body := dto.PriceTableBody{
		Porcelain:     table.Porcelain,
		InlaySmall:    table.InlaySmall,
		Inlay:         table.Inlay,
		CrownPlatinum: table.CrownPlatinum,
		CrownStandard: table.CrownStandard,
		CrownAlloy:    table.CrownAlloy,
	}
	if !table.Date.IsZero() {
		body.Date = table.Date.Format("2006-01-02")
	}
	return body
}
