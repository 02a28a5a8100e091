package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rentkit/outreach-console/internal/domain"
	"github.com/rentkit/outreach-console/internal/service"
	"github.com/rentkit/outreach-console/pkg/response"
)

type FunnelHandler struct {
	service *service.FunnelService
}

func NewFunnelHandler(service *service.FunnelService) *FunnelHandler {
	return &FunnelHandler{service: service}
}

// List godoc
// @Summary List sales funnels
// @Tags funnels
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Success 200 {object} response.ListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/funnels [get]
func (h *FunnelHandler) List(c echo.Context) error {
	funnels, err := h.service.List(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.List(c, funnels, len(funnels))
}

// Assignments godoc
// @Summary List funnel assignments for a set of messages
// @Description Answers "which funnels is this content assigned to" for the given message ids
// @Tags funnels
// @Accept json
// @Produce json
// @Param x-api-key header string true "Admin API key"
// @Param channel query string true "Channel (sms or email)"
// @Param messageIds query string true "Comma-separated message ids"
// @Success 200 {object} response.ListResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/funnels/assignments [get]
func (h *FunnelHandler) Assignments(c echo.Context) error {
	ch, ok := domain.ParseChannel(c.QueryParam("channel"))
	if !ok {
		return response.BadRequestWithMessage(c, "channel query parameter must be sms or email")
	}

	ids, err := parseIDList(c.QueryParam("messageIds"))
	if err != nil {
		return response.BadRequest(c, err)
	}

	assignments, err := h.service.Assignments(c.Request().Context(), ch, ids)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.List(c, assignments, len(assignments))
}

func parseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("messageIds query parameter is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid message id %q", part)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
