package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// PracticeHandler exposes practice endpoints.
type PracticeHandler struct {
	practices *service.PracticeService
}

// NewPracticeHandler constructs handler.
func NewPracticeHandler(practices *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practices: practices}
}

// Create godoc
// @Summary Create a practice
// @Tags Practices
// @Accept json
// @Produce json
// @Param payload body dto.SavePracticeRequest true "Practice payload"
// @Success 201 {object} response.Envelope
// @Router /practices [post]
func (h *PracticeHandler) Create(c *gin.Context) {
	var req dto.SavePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	practice, err := h.practices.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, practice)
}

// Update godoc
// @Summary Update a practice
// @Tags Practices
// @Accept json
// @Produce json
// @Param id path string true "Practice id"
// @Param payload body dto.SavePracticeRequest true "Practice payload"
// @Success 200 {object} response.Envelope
// @Router /practices/{id} [put]
func (h *PracticeHandler) Update(c *gin.Context) {
	var req dto.SavePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	practice, err := h.practices.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, practice, nil)
}

// Delete godoc
// @Summary Delete a practice and free its slots
// @Tags Practices
// @Produce json
// @Param id path string true "Practice id"
// @Success 200 {object} response.Envelope
// @Router /practices/{id} [delete]
func (h *PracticeHandler) Delete(c *gin.Context) {
	result, err := h.practices.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Fetch one practice
// @Tags Practices
// @Produce json
// @Param id path string true "Practice id"
// @Success 200 {object} response.Envelope
// @Router /practices/{id} [get]
func (h *PracticeHandler) Get(c *gin.Context) {
	practice, err := h.practices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, practice, nil)
}

// List godoc
// @Summary List practices
// @Tags Practices
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /practices [get]
func (h *PracticeHandler) List(c *gin.Context) {
	practices, err := h.practices.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, practices, nil)
}
