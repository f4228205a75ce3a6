package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdip/intelligence-platform/internal/api/metrics"
	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

// TicketHandler handles HTTP requests for IT support tickets.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

type createTicketRequest struct {
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=Low Medium High Critical"`
}

type assignTicketRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required"`
}

type resolveTicketRequest struct {
	ResolutionTimeHours float64 `json:"resolution_time_hours" validate:"gte=0"`
}

// Create handles POST /v1/tickets.
//
// @Summary      Open a new ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  domain.Ticket
// @Failure      400   {object}  map[string]string
// @Router       /v1/tickets [post]
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		Description: req.Description,
		Priority:    req.Priority,
		OpenedBy:    accountID,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("tickets").Inc()
	return c.JSON(http.StatusCreated, ticket)
}

// Get handles GET /v1/tickets/:id.
//
// @Summary      Get a ticket by id
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ticket id"
// @Success      200  {object}  domain.Ticket
// @Failure      404  {object}  map[string]string
// @Router       /v1/tickets/{id} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// List handles GET /v1/tickets. Status and priority filters arrive as
// comma-separated query values.
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Comma-separated statuses"
// @Param        priority  query     string  false  "Comma-separated priorities"
// @Param        sort      query     string  false  "Set to 'priority' to order Critical first"
// @Param        limit     query     int     false  "Maximum results"
// @Success      200       {array}   domain.Ticket
// @Router       /v1/tickets [get]
func (h *TicketHandler) List(c echo.Context) error {
	filter := ports.TicketFilter{}
	if raw := c.QueryParam("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(s)))
		}
	}
	if raw := c.QueryParam("priority"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			filter.Priorities = append(filter.Priorities, domain.TicketPriority(strings.TrimSpace(p)))
		}
	}
	if raw := c.QueryParam("sort"); raw != "" {
		if raw != "priority" {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid sort")
		}
		filter.SortByPriority = true
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	tickets, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}

// Assign handles POST /v1/tickets/:id/assign.
//
// @Summary      Assign a ticket to a support person
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Ticket id"
// @Param        body  body      assignTicketRequest  true  "Assignee"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  map[string]string
// @Router       /v1/tickets/{id}/assign [post]
func (h *TicketHandler) Assign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req assignTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Assign(c.Request().Context(), id, req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Resolve handles POST /v1/tickets/:id/resolve.
//
// @Summary      Resolve a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Ticket id"
// @Param        body  body      resolveTicketRequest  true  "Resolution time"
// @Success      200   {object}  domain.Ticket
// @Failure      404   {object}  map[string]string
// @Router       /v1/tickets/{id}/resolve [post]
func (h *TicketHandler) Resolve(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req resolveTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Resolve(c.Request().Context(), id, req.ResolutionTimeHours)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Stats handles GET /v1/tickets/stats.
//
// @Summary      Ticket statistics
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.TicketStats
// @Router       /v1/tickets/stats [get]
func (h *TicketHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
