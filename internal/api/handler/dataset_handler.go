package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mdip/intelligence-platform/internal/api/metrics"
	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

// DatasetHandler handles HTTP requests for dataset metadata records.
type DatasetHandler struct {
	service ports.DatasetService
}

func NewDatasetHandler(service ports.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

type datasetRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
	Rows        int64  `json:"rows"        validate:"gte=0"`
}

// Create handles POST /v1/datasets.
//
// @Summary      Register a dataset
// @Tags         datasets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      datasetRequest  true  "Dataset metadata"
// @Success      201   {object}  domain.Dataset
// @Failure      400   {object}  map[string]string
// @Router       /v1/datasets [post]
func (h *DatasetHandler) Create(c echo.Context) error {
	var req datasetRequest
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

	dataset, err := h.service.Create(c.Request().Context(), ports.CreateDatasetInput{
		Name:        req.Name,
		Description: req.Description,
		Rows:        req.Rows,
		Owner:       accountID,
	})
	if err != nil {
		return err
	}

	metrics.RecordsCreatedTotal.WithLabelValues("datasets").Inc()
	return c.JSON(http.StatusCreated, dataset)
}

// Get handles GET /v1/datasets/:id.
//
// @Summary      Get a dataset by id
// @Tags         datasets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Dataset id"
// @Success      200  {object}  domain.Dataset
// @Failure      404  {object}  map[string]string
// @Router       /v1/datasets/{id} [get]
func (h *DatasetHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	dataset, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataset)
}

// List handles GET /v1/datasets.
//
// @Summary      List datasets
// @Tags         datasets
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum results"
// @Success      200    {array}   domain.Dataset
// @Router       /v1/datasets [get]
func (h *DatasetHandler) List(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || parsed < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	datasets, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if datasets == nil {
		datasets = []domain.Dataset{}
	}
	return c.JSON(http.StatusOK, datasets)
}

// Update handles PUT /v1/datasets/:id.
//
// @Summary      Update a dataset
// @Tags         datasets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Dataset id"
// @Param        body  body      datasetRequest  true  "Updated fields"
// @Success      200   {object}  domain.Dataset
// @Failure      404   {object}  map[string]string
// @Router       /v1/datasets/{id} [put]
func (h *DatasetHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req datasetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dataset, err := h.service.Update(c.Request().Context(), ports.UpdateDatasetInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Rows:        req.Rows,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataset)
}

// Delete handles DELETE /v1/datasets/:id (admin only, enforced by RBAC).
//
// @Summary      Delete a dataset
// @Tags         datasets
// @Security     BearerAuth
// @Param        id  path  int  true  "Dataset id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/datasets/{id} [delete]
func (h *DatasetHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats handles GET /v1/datasets/stats.
//
// @Summary      Dataset statistics
// @Tags         datasets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DatasetStats
// @Router       /v1/datasets/stats [get]
func (h *DatasetHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
