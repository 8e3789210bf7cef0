package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// RentalHandler exposes rental endpoints.
type RentalHandler struct {
	rentals *service.RentalService
}

// NewRentalHandler constructs handler.
func NewRentalHandler(rentals *service.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

// Reserve godoc
// @Summary Reserve a contiguous block of slots
// @Tags Rentals
// @Accept json
// @Produce json
// @Param payload body dto.ReserveRentalRequest true "Reservation payload"
// @Success 201 {object} response.Envelope
// @Router /rentals [post]
func (h *RentalHandler) Reserve(c *gin.Context) {
	var req dto.ReserveRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rentals, err := h.rentals.Reserve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rentals)
}

// Cancel godoc
// @Summary Cancel a reserved rental
// @Tags Rentals
// @Accept json
// @Produce json
// @Param id path string true "Rental id"
// @Param payload body dto.CancelRentalRequest false "Cancellation payload"
// @Success 200 {object} response.Envelope
// @Router /rentals/{id}/cancel [put]
func (h *RentalHandler) Cancel(c *gin.Context) {
	var req dto.CancelRentalRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	rental, err := h.rentals.Cancel(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}

// Get godoc
// @Summary Fetch one rental
// @Tags Rentals
// @Produce json
// @Param id path string true "Rental id"
// @Success 200 {object} response.Envelope
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	rental, err := h.rentals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rental, nil)
}

// List godoc
// @Summary List rentals
// @Tags Rentals
// @Produce json
// @Param memberId query string false "Filter by member"
// @Param state query string false "Filter by state"
// @Success 200 {object} response.Envelope
// @Router /rentals [get]
func (h *RentalHandler) List(c *gin.Context) {
	query := dto.RentalQuery{
		MemberID: c.Query("memberId"),
		State:    c.Query("state"),
	}
	rentals, err := h.rentals.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rentals, nil)
}
