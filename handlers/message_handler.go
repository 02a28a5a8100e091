package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentkit/outreach-console/internal/domain"
	"github.com/rentkit/outreach-console/internal/service"
	"github.com/rentkit/outreach-console/internal/view"
	"github.com/rentkit/outreach-console/pkg/response"
	"github.com/rentkit/outreach-console/pkg/validator"
)

type MessageHandler struct {
	service *service.MessageService
}

func NewMessageHandler(service *service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type CreateMessageRequest struct {
	Channel         string  `json:"channel" validate:"required,oneof=sms email"`
	ContextCategory string  `json:"contextCategory" validate:"required"`
	ContentName     string  `json:"contentName" validate:"required"`
	Subject         *string `json:"subject,omitempty" validate:"omitempty,max=255"`
	Content         string  `json:"content" validate:"required"`
	MessageType     string  `json:"messageType" validate:"required,oneof=broadcast funnel_content email_broadcast email_funnel_content"`
}

type UpdateMessageRequest struct {
	ContextCategory *string `json:"contextCategory,omitempty" validate:"omitempty,min=1"`
	ContentName     *string `json:"contentName,omitempty" validate:"omitempty,min=1"`
	Subject         *string `json:"subject,omitempty" validate:"omitempty,max=255"`
	Content         *string `json:"content,omitempty" validate:"omitempty,min=1"`
	MessageType     *string `json:"messageType,omitempty" validate:"omitempty,oneof=broadcast funnel_content email_broadcast email_funnel_content"`
}

// List godoc
// @Summary List messages in one bucket
// @Description Returns the filtered, sorted view for a bucket with optional category and name-search filters
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param type query string true "Bucket (broadcast, funnel_content, email_broadcast, email_funnel_content)"
// @Param category query string false "Exact category filter; 'all' or empty disables"
// @Param search query string false "Case-insensitive substring match on content name"
// @Param sort query string false "Set to 'name' to order by content name (broadcast picker)"
// @Success 200 {object} response.ListResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	bucket, err := parseBucketParam(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	q := view.Query{
		Bucket:     bucket,
		Category:   c.QueryParam("category"),
		Search:     c.QueryParam("search"),
		SortByName: c.QueryParam("sort") == "name",
	}

	messages, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.List(c, messages, len(messages))
}

// Categories godoc
// @Summary List available categories for a bucket
// @Description Returns the deduplicated, sorted category names present in the bucket, independent of active filters
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param type query string true "Bucket"
// @Success 200 {object} response.ListResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/categories [get]
func (h *MessageHandler) Categories(c echo.Context) error {
	bucket, err := parseBucketParam(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	categories, err := h.service.AvailableCategories(c.Request().Context(), bucket)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.List(c, categories, len(categories))
}

// Create godoc
// @Summary Create a new message
// @Description Creates a message in the table implied by its channel and returns the stored record
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param message body CreateMessageRequest true "Message to create"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	message, err := h.service.Create(c.Request().Context(), domain.NewMessage{
		Channel:         domain.Channel(req.Channel),
		ContextCategory: req.ContextCategory,
		ContentName:     req.ContentName,
		Subject:         req.Subject,
		Content:         req.Content,
		MessageType:     domain.MessageType(req.MessageType),
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Created(c, "Message created successfully", message)
}

// Update godoc
// @Summary Update a message
// @Description Applies a partial update and returns the fresh record
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param id path int true "Message ID"
// @Param channel query string true "Channel (sms or email)"
// @Param message body UpdateMessageRequest true "Fields to update"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} validator.ValidationErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/{id} [put]
func (h *MessageHandler) Update(c echo.Context) error {
	ch, id, err := parseChannelAndID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	var req UpdateMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	patch := domain.MessageUpdate{
		ContextCategory: req.ContextCategory,
		ContentName:     req.ContentName,
		Subject:         req.Subject,
		Content:         req.Content,
	}
	if req.MessageType != nil {
		mt := domain.MessageType(*req.MessageType)
		patch.MessageType = &mt
	}

	message, err := h.service.Update(c.Request().Context(), ch, id, patch)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Ok(c, message)
}

// MarkSent godoc
// @Summary Mark a message as sent
// @Description Sets the send timestamp to now; re-invoking overwrites the previous timestamp
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param id path int true "Message ID"
// @Param channel query string true "Channel (sms or email)"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/{id}/send [post]
func (h *MessageHandler) MarkSent(c echo.Context) error {
	ch, id, err := parseChannelAndID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	message, err := h.service.MarkSent(c.Request().Context(), ch, id)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.OkWithMessage(c, "Message marked as sent", message)
}

// Duplicate godoc
// @Summary Duplicate a message
// @Description Creates an unsent copy with " (Copy)" appended to the name
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param id path int true "Message ID"
// @Param channel query string true "Channel (sms or email)"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/{id}/duplicate [post]
func (h *MessageHandler) Duplicate(c echo.Context) error {
	ch, id, err := parseChannelAndID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	message, err := h.service.Duplicate(c.Request().Context(), ch, id)
	if err != nil {
		return mapServiceError(c, err)
	}

	return response.Created(c, "Message copied successfully", message)
}

// Delete godoc
// @Summary Delete a message
// @Description Permanently removes the record; funnel assignments are not cascaded
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param id path int true "Message ID"
// @Param channel query string true "Channel (sms or email)"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	ch, id, err := parseChannelAndID(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	if err := h.service.Delete(c.Request().Context(), ch, id); err != nil {
		return mapServiceError(c, err)
	}

	return response.NoContent(c)
}

// RecentSends godoc
// @Summary List recently sent broadcasts
// @Description Returns the cache of broadcasts marked sent within the TTL window
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.ListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/recent-sends [get]
func (h *MessageHandler) RecentSends(c echo.Context) error {
	sends, err := h.service.RecentSends(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.List(c, sends, len(sends))
}

// Stats godoc
// @Summary Get message statistics
// @Description Returns record counts per bucket across both channels
// @Tags messages
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/stats [get]
func (h *MessageHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, stats)
}

func parseBucketParam(c echo.Context) (domain.MessageType, error) {
	typeStr := c.QueryParam("type")
	if typeStr == "" {
		return "", fmt.Errorf("type query parameter is required")
	}

	bucket, ok := domain.ParseMessageType(typeStr)
	if !ok {
		return "", fmt.Errorf("invalid message type %q", typeStr)
	}

	return bucket, nil
}

func parseChannelAndID(c echo.Context) (domain.Channel, int64, error) {
	ch, ok := domain.ParseChannel(c.QueryParam("channel"))
	if !ok {
		return "", 0, fmt.Errorf("channel query parameter must be sms or email")
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid message id")
	}

	return ch, id, nil
}

func mapServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return response.UnprocessableEntity(c, err)
	default:
		return response.InternalServerError(c, err)
	}
}
