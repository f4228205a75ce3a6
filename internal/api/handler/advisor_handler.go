package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mdip/intelligence-platform/internal/api/metrics"
	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

// AdvisorHandler exposes the AI guidance endpoints backing the three
// dashboards' assistant panels.
type AdvisorHandler struct {
	service ports.AdvisorService
}

func NewAdvisorHandler(service ports.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

type adviceRequest struct {
	Description string `json:"description" validate:"required"`
}

type chatRequest struct {
	Topic   string               `json:"topic"   validate:"required,oneof=cybersecurity data_science it_operations general"`
	Message string               `json:"message" validate:"required"`
	History []domain.ChatMessage `json:"history,omitempty"`
}

type adviceResponse struct {
	Answer string `json:"answer"`
}

// SecurityAdvice handles POST /v1/advisor/security.
//
// @Summary      Get security advice for an incident
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Incident description"
// @Success      200   {object}  adviceResponse
// @Failure      429   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/advisor/security [post]
func (h *AdvisorHandler) SecurityAdvice(c echo.Context) error {
	return h.serve(c, domain.TopicCybersecurity, h.service.SecurityAdvice)
}

// DatasetInsights handles POST /v1/advisor/datasets.
//
// @Summary      Get analysis suggestions for a dataset
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Dataset summary"
// @Success      200   {object}  adviceResponse
// @Router       /v1/advisor/datasets [post]
func (h *AdvisorHandler) DatasetInsights(c echo.Context) error {
	return h.serve(c, domain.TopicDataScience, h.service.DatasetInsights)
}

// TicketSolution handles POST /v1/advisor/tickets.
//
// @Summary      Get troubleshooting steps for a ticket
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adviceRequest  true  "Ticket description"
// @Success      200   {object}  adviceResponse
// @Router       /v1/advisor/tickets [post]
func (h *AdvisorHandler) TicketSolution(c echo.Context) error {
	return h.serve(c, domain.TopicITOperations, h.service.TicketSolution)
}

// Chat handles POST /v1/advisor/chat.
//
// @Summary      Free-form chat with the domain assistant
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chatRequest  true  "Message and optional history"
// @Success      200   {object}  adviceResponse
// @Router       /v1/advisor/chat [post]
func (h *AdvisorHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	topic := domain.AdviceTopic(req.Topic)
	start := time.Now()
	answer, err := h.service.Chat(c.Request().Context(), topic, req.Message, req.History)
	observe(topic, start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adviceResponse{Answer: answer})
}

// serve binds the shared advice request shape and dispatches to one of the
// canned-advice service methods, recording latency and outcome.
func (h *AdvisorHandler) serve(c echo.Context, topic domain.AdviceTopic, fn func(ctx context.Context, description string) (string, error)) error {
	var req adviceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	answer, err := fn(c.Request().Context(), req.Description)
	observe(topic, start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adviceResponse{Answer: answer})
}

func observe(topic domain.AdviceTopic, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.AdvisorRequestsTotal.WithLabelValues(string(topic), result).Inc()
	metrics.AdvisorDuration.WithLabelValues(string(topic)).Observe(time.Since(start).Seconds())
}
