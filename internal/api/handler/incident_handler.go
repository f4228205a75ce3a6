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

// IncidentHandler handles HTTP requests for security incident records.
type IncidentHandler struct {
	service ports.IncidentService
}

func NewIncidentHandler(service ports.IncidentService) *IncidentHandler {
	return &IncidentHandler{service: service}
}

type createIncidentRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity"    validate:"omitempty,oneof=Low Medium High Critical"`
}

type updateIncidentRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity"    validate:"required,oneof=Low Medium High Critical"`
}

// Create handles POST /v1/incidents.
//
// @Summary      Report a new incident
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIncidentRequest  true  "Incident details"
// @Success      201   {object}  domain.Incident
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/incidents [post]
func (h *IncidentHandler) Create(c echo.Context) error {
	var req createIncidentRequest
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

	incident, err := h.service.Create(c.Request().Context(), ports.CreateIncidentInput{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		ReportedBy:  accountID,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("incidents").Inc()
	return c.JSON(http.StatusCreated, incident)
}

// Get handles GET /v1/incidents/:id.
//
// @Summary      Get an incident by id
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Incident id"
// @Success      200  {object}  domain.Incident
// @Failure      404  {object}  map[string]string
// @Router       /v1/incidents/{id} [get]
func (h *IncidentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	incident, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, incident)
}

// List handles GET /v1/incidents. Severity filters arrive as a
// comma-separated query value, e.g. ?severity=High,Critical.
//
// @Summary      List incidents
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Param        severity  query     string  false  "Comma-separated severities"
// @Param        limit     query     int     false  "Maximum results"
// @Success      200       {array}   domain.Incident
// @Router       /v1/incidents [get]
func (h *IncidentHandler) List(c echo.Context) error {
	filter := ports.IncidentFilter{}
	if raw := c.QueryParam("severity"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Severities = append(filter.Severities, domain.Severity(strings.TrimSpace(s)))
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	incidents, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if incidents == nil {
		incidents = []domain.Incident{}
	}
	return c.JSON(http.StatusOK, incidents)
}

// Update handles PUT /v1/incidents/:id.
//
// @Summary      Update an incident
// @Tags         incidents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Incident id"
// @Param        body  body      updateIncidentRequest  true  "Updated fields"
// @Success      200   {object}  domain.Incident
// @Failure      404   {object}  map[string]string
// @Router       /v1/incidents/{id} [put]
func (h *IncidentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateIncidentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	incident, err := h.service.Update(c.Request().Context(), ports.UpdateIncidentInput{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, incident)
}

// Delete handles DELETE /v1/incidents/:id (admin only, enforced by RBAC).
//
// @Summary      Delete an incident
// @Tags         incidents
// @Security     BearerAuth
// @Param        id  path  int  true  "Incident id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/incidents/{id} [delete]
func (h *IncidentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/incidents/stats.
//
// @Summary      Incident statistics
// @Tags         incidents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.IncidentStats
// @Router       /v1/incidents/stats [get]
func (h *IncidentHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
