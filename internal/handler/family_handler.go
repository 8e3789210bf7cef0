package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// FamilyHandler exposes family plan endpoints.
type FamilyHandler struct {
	families *service.FamilyService
}

// NewFamilyHandler constructs handler.
func NewFamilyHandler(families *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{families: families}
}

// Create godoc
// @Summary Open a family plan
// @Tags Families
// @Accept json
// @Produce json
// @Param payload body dto.CreateFamilyRequest true "Family payload"
// @Success 201 {object} response.Envelope
// @Router /families [post]
func (h *FamilyHandler) Create(c *gin.Context) {
	var req dto.CreateFamilyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	family, err := h.families.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, family)
}

// Get godoc
// @Summary Fetch one family
// @Tags Families
// @Produce json
// @Param id path string true "Family id"
// @Success 200 {object} response.Envelope
// @Router /families/{id} [get]
func (h *FamilyHandler) Get(c *gin.Context) {
	family, err := h.families.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, family, nil)
}

// List godoc
// @Summary List families
// @Tags Families
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /families [get]
func (h *FamilyHandler) List(c *gin.Context) {
	families, err := h.families.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, families, nil)
}

// Delete godoc
// @Summary Dissolve a family plan
// @Tags Families
// @Produce json
// @Param id path string true "Family id"
// @Success 204 {object} nil
// @Router /families/{id} [delete]
func (h *FamilyHandler) Delete(c *gin.Context) {
	if err := h.families.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
