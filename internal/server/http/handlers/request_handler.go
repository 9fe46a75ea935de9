package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/server/http/dto"
	"github.com/aurumdent/goldbuy/internal/usecase"
)

// maxImageSize bounds a single evaluation image upload.
const maxImageSize = 10 << 20

// RequestHandler manages purchase request endpoints.
type RequestHandler struct {
	facade RequestFacade
}

// NewRequestHandler constructs RequestHandler.
func NewRequestHandler(facade RequestFacade) *RequestHandler {
	return &RequestHandler{facade: facade}
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	items := make([]model.GoldItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.GoldItem{
			Category:    model.GoldCategory(item.Category),
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			Description: item.Description,
		})
	}

	created, err := h.facade.CreateRequest(c.Request.Context(), CurrentUserID(c), usecase.CreateRequestInput{
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Items:        items,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrUnknownCategory), errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toRequestResponse(created))
}

// List handles GET /api/requests. Admins see every request, customers
// only their own.
func (h *RequestHandler) List(c *gin.Context) {
	var status *model.RequestStatus
	if raw := c.Query("status"); raw != "" {
		normalized, ok := model.NormalizeStatus(raw)
		if !ok {
			c.Status(http.StatusBadRequest)
			return
		}
		status = &normalized
	}

	requests, err := h.facade.Requests(c.Request.Context(), CurrentActor(c), status)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		response = append(response, toRequestResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	req, err := h.facade.Request(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		requestError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(req))
}

// UpdateStatus handles PATCH /api/requests/:id/status.
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	target, valid := model.NormalizeStatus(body.Status)
	if !valid {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	req, err := h.facade.TransitionRequest(c.Request.Context(), CurrentActor(c), id, target, body.Note)
	if err != nil {
		requestError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(req))
}

// Confirm handles POST /api/requests/:id/confirm. Customer acceptance of
// the evaluated price.
func (h *RequestHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	req, err := h.facade.ConfirmRequest(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		requestError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(req))
}

// Evaluate handles PATCH /api/requests/:id/evaluation. Admin only.
func (h *RequestHandler) Evaluate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body dto.EvaluationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	req, err := h.facade.EvaluateRequest(c.Request.Context(), CurrentActor(c), id, usecase.EvaluationInput{
		FinalWeight: body.FinalWeight,
		FinalPrice:  body.FinalPrice,
		Notes:       body.Notes,
		Images:      body.Images,
	})
	if err != nil {
		requestError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponse(req))
}

// Timeline handles GET /api/requests/:id/timeline.
func (h *RequestHandler) Timeline(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	changes, err := h.facade.RequestTimeline(c.Request.Context(), CurrentActor(c), id)
	if err != nil {
		requestError(c, err)
		return
	}
	if len(changes) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.StatusChangeResponse, 0, len(changes))
	for _, change := range changes {
		response = append(response, dto.StatusChangeResponse{
			From:      string(change.From),
			To:        string(change.To),
			ActorID:   change.ActorID,
			Note:      change.Note,
			ChangedAt: change.ChangedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

// UploadImage handles POST /api/requests/:id/images. Admin only,
// multipart. The returned URL is attached to the request through the
// evaluation payload.
func (h *RequestHandler) UploadImage(c *gin.Context) {
	if _, ok := pathID(c); !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if file.Size > maxImageSize {
		c.Status(http.StatusRequestEntityTooLarge)
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	defer src.Close()

	url, err := h.facade.UploadImage(c.Request.Context(), file.Filename, src)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func requestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.Status(http.StatusConflict)
	case errors.Is(err, domainErrors.ErrEvaluationIncomplete):
		c.Status(http.StatusUnprocessableEntity)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func toRequestResponse(req *model.PurchaseRequest) dto.RequestResponse {
	items := make([]dto.GoldItemBody, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, dto.GoldItemBody{
			Category:    string(item.Category),
			Quantity:    item.Quantity,
			Weight:      item.Weight,
			Description: item.Description,
		})
	}
	return dto.RequestResponse{
		ID:               req.ID,
		Number:           req.Number,
		UserID:           req.UserID,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		Address:          req.Address,
		Items:            items,
		EstimatedPrice:   req.EstimatedPrice,
		Status:           string(req.Status),
		FinalWeight:      req.FinalWeight,
		FinalPrice:       req.FinalPrice,
		EvaluationNotes:  req.EvaluationNotes,
		EvaluationImages: req.EvaluationImages,
		CreatedAt:        req.CreatedAt,
	}
}
