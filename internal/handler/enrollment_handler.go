package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// EnrollmentHandler exposes practice enrollment endpoints.
type EnrollmentHandler struct {
	enrollments *service.EnrollmentService
}

// NewEnrollmentHandler constructs handler.
func NewEnrollmentHandler(enrollments *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

// Enroll godoc
// @Summary Enroll a member in a practice
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	enrollment, err := h.enrollments.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// ListByPractice godoc
// @Summary List enrollments of a practice
// @Tags Enrollments
// @Produce json
// @Param id path string true "Practice id"
// @Success 200 {object} response.Envelope
// @Router /practices/{id}/enrollments [get]
func (h *EnrollmentHandler) ListByPractice(c *gin.Context) {
	enrollments, err := h.enrollments.ListByPractice(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}
