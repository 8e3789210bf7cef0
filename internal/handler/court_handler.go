package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// CourtHandler exposes court inventory endpoints.
type CourtHandler struct {
	courts *service.CourtService
}

// NewCourtHandler constructs handler.
func NewCourtHandler(courts *service.CourtService) *CourtHandler {
	return &CourtHandler{courts: courts}
}

// Create godoc
// @Summary Register a court
// @Tags Courts
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourtRequest true "Court payload"
// @Success 201 {object} response.Envelope
// @Router /courts [post]
func (h *CourtHandler) Create(c *gin.Context) {
	var req dto.CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	court, err := h.courts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, court)
}

// Update godoc
// @Summary Update a court
// @Tags Courts
// @Accept json
// @Produce json
// @Param id path string true "Court id"
// @Param payload body dto.UpdateCourtRequest true "Court payload"
// @Success 200 {object} response.Envelope
// @Router /courts/{id} [put]
func (h *CourtHandler) Update(c *gin.Context) {
	var req dto.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	court, err := h.courts.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, court, nil)
}

// Delete godoc
// @Summary Delete a court
// @Tags Courts
// @Produce json
// @Param id path string true "Court id"
// @Success 204 {object} nil
// @Router /courts/{id} [delete]
func (h *CourtHandler) Delete(c *gin.Context) {
	if err := h.courts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get godoc
// @Summary Fetch one court with its weekly schedule
// @Tags Courts
// @Produce json
// @Param id path string true "Court id"
// @Success 200 {object} response.Envelope
// @Router /courts/{id} [get]
func (h *CourtHandler) Get(c *gin.Context) {
	court, err := h.courts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, court, nil)
}

// List godoc
// @Summary List courts
// @Tags Courts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courts [get]
func (h *CourtHandler) List(c *gin.Context) {
	courts, err := h.courts.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courts, nil)
}
