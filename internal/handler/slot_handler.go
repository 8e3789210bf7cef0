package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// SlotHandler exposes slot generation and listing endpoints.
type SlotHandler struct {
	slots *service.SlotService
}

// NewSlotHandler constructs handler.
func NewSlotHandler(slots *service.SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

// Generate godoc
// @Summary Generate slots for a date range
// @Tags Slots
// @Accept json
// @Produce json
// @Param payload body dto.GenerateSlotsRequest true "Date range"
// @Success 200 {object} response.Envelope
// @Router /slots/generate [post]
func (h *SlotHandler) Generate(c *gin.Context) {
	var req dto.GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.slots.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List slots of a court on a date
// @Tags Slots
// @Produce json
// @Param courtId query string true "Court id"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param state query string false "Slot state filter"
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	query := dto.SlotQuery{
		CourtID: c.Query("courtId"),
		Date:    c.Query("date"),
		State:   c.Query("state"),
	}
	slots, err := h.slots.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Sheet godoc
// @Summary Export a printable slot sheet
// @Tags Slots
// @Produce text/csv
// @Produce application/pdf
// @Param courtId query string true "Court id"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Router /slots/sheet [get]
func (h *SlotHandler) Sheet(c *gin.Context) {
	query := dto.SlotSheetQuery{
		CourtID: c.Query("courtId"),
		Date:    c.Query("date"),
		Format:  c.DefaultQuery("format", "csv"),
	}
	payload, contentType, err := h.slots.Sheet(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := "slots-" + query.CourtID + "-" + query.Date
	if contentType == "application/pdf" {
		filename += ".pdf"
	} else {
		filename += ".csv"
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, payload)
}
