package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rollyard/roll-inventory-api/internal/dto"
	"github.com/rollyard/roll-inventory-api/internal/models"
	appErrors "github.com/rollyard/roll-inventory-api/pkg/errors"
	"github.com/rollyard/roll-inventory-api/pkg/response"
)

type rollService interface {
	Create(ctx context.Context, req dto.CreateRollRequest) (*models.Roll, error)
	Delete(ctx context.Context, id int64) (*models.Roll, error)
	Get(ctx context.Context, id int64) (*models.Roll, error)
	List(ctx context.Context, filter models.RollFilter) ([]models.Roll, error)
	StatsInRange(ctx context.Context, query dto.StatsQuery) (*models.RollStats, error)
}

// RollHandler exposes the roll inventory endpoints.
type RollHandler struct {
	service rollService
}

// NewRollHandler builds a new handler.
func NewRollHandler(service rollService) *RollHandler {
	return &RollHandler{service: service}
}

// Create godoc
// @Summary Register a new roll
// @Tags Rolls
// @Accept json
// @Produce json
// @Param payload body dto.CreateRollRequest true "Roll payload"
// @Success 200 {object} response.Envelope
// @Router /rolls [post]
func (h *RollHandler) Create(c *gin.Context) {
	var req dto.CreateRollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roll payload"))
		return
	}
	roll, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roll)
}

// Delete godoc
// @Summary Soft-delete a roll
// @Tags Rolls
// @Produce json
// @Param id path int true "Roll ID"
// @Success 200 {object} response.Envelope
// @Router /rolls/{id} [delete]
func (h *RollHandler) Delete(c *gin.Context) {
	id, err := rollID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	roll, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roll)
}

// Get godoc
// @Summary Fetch a roll by ID
// @Tags Rolls
// @Produce json
// @Param id path int true "Roll ID"
// @Success 200 {object} response.Envelope
// @Router /rolls/{id} [get]
func (h *RollHandler) Get(c *gin.Context) {
	id, err := rollID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	roll, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roll)
}

// List godoc
// @Summary List rolls with optional bounds
// @Tags Rolls
// @Produce json
// @Param length_min query number false "Minimum length (inclusive)"
// @Param length_max query number false "Maximum length (inclusive)"
// @Param weight_min query number false "Minimum weight (inclusive)"
// @Param weight_max query number false "Maximum weight (inclusive)"
// @Param date_added_min query string false "Earliest date_added (inclusive)"
// @Param date_added_max query string false "Latest date_added (inclusive)"
// @Param date_removed_min query string false "Earliest date_removed (inclusive)"
// @Param date_removed_max query string false "Latest date_removed (inclusive)"
// @Success 200 {object} response.Envelope
// @Router /rolls [get]
func (h *RollHandler) List(c *gin.Context) {
	filter, err := rollFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rolls, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rolls)
}

// Stats godoc
// @Summary Aggregate roll statistics over a date window
// @Tags Rolls
// @Produce json
// @Param start_date query string true "Window start (inclusive)"
// @Param end_date query string true "Window end (inclusive)"
// @Success 200 {object} response.Envelope
// @Router /rolls/stats [get]
func (h *RollHandler) Stats(c *gin.Context) {
	start, err := requiredTimeQuery(c, "start_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := requiredTimeQuery(c, "end_date")
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.service.StatsInRange(c.Request.Context(), dto.StatsQuery{StartDate: start, EndDate: end})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

func rollID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "roll id must be an integer")
	}
	return id, nil
}

func rollFilter(c *gin.Context) (models.RollFilter, error) {
	var filter models.RollFilter
	var err error

	if filter.LengthMin, err = floatQuery(c, "length_min"); err != nil {
		return filter, err
	}
	if filter.LengthMax, err = floatQuery(c, "length_max"); err != nil {
		return filter, err
	}
	if filter.WeightMin, err = floatQuery(c, "weight_min"); err != nil {
		return filter, err
	}
	if filter.WeightMax, err = floatQuery(c, "weight_max"); err != nil {
		return filter, err
	}
	if filter.DateAddedMin, err = timeQuery(c, "date_added_min"); err != nil {
		return filter, err
	}
	if filter.DateAddedMax, err = timeQuery(c, "date_added_max"); err != nil {
		return filter, err
	}
	if filter.DateRemovedMin, err = timeQuery(c, "date_removed_min"); err != nil {
		return filter, err
	}
	if filter.DateRemovedMax, err = timeQuery(c, "date_removed_max"); err != nil {
		return filter, err
	}
	return filter, nil
}

func floatQuery(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, name+" must be a number")
	}
	return &value, nil
}

// timeLayouts are accepted in order for timestamp query parameters.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := parseTime(raw)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, name+" must be a timestamp")
	}
	return &value, nil
}

func requiredTimeQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, name+" is required")
	}
	value, err := parseTime(raw)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, name+" must be a timestamp")
	}
	return value, nil
}

func parseTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		value, err := time.Parse(layout, raw)
		if err == nil {
			return value.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
