package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clubsanmartin/club-api/internal/dto"
	"github.com/clubsanmartin/club-api/internal/models"
	"github.com/clubsanmartin/club-api/internal/service"
	appErrors "github.com/clubsanmartin/club-api/pkg/errors"
	"github.com/clubsanmartin/club-api/pkg/response"
)

// MemberHandler exposes member administration endpoints.
type MemberHandler struct {
	members     *service.MemberService
	enrollments *service.EnrollmentService
}

// NewMemberHandler constructs handler.
func NewMemberHandler(members *service.MemberService, enrollments *service.EnrollmentService) *MemberHandler {
	return &MemberHandler{members: members, enrollments: enrollments}
}

// Create godoc
// @Summary Register a member
// @Tags Members
// @Accept json
// @Produce json
// @Param payload body dto.CreateMemberRequest true "Member payload"
// @Success 201 {object} response.Envelope
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req dto.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.members.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update a member
// @Tags Members
// @Accept json
// @Produce json
// @Param id path string true "Member id"
// @Param payload body dto.UpdateMemberRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Router /members/{id} [put]
func (h *MemberHandler) Update(c *gin.Context) {
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	member, err := h.members.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Get godoc
// @Summary Fetch one member
// @Tags Members
// @Produce json
// @Param id path string true "Member id"
// @Success 200 {object} response.Envelope
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.members.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// List godoc
// @Summary List members
// @Tags Members
// @Produce json
// @Param search query string false "Name or DNI search"
// @Param planType query string false "Plan type filter"
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	filter := models.MemberFilter{
		Search:   c.Query("search"),
		PlanType: models.PlanType(c.Query("planType")),
		Status:   models.MemberStatus(c.Query("status")),
		FamilyID: c.Query("familyId"),
		Page:     page,
		PageSize: pageSize,
	}
	members, pagination, err := h.members.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, members, pagination)
}

// Enrollments godoc
// @Summary List a member's practice enrollments
// @Tags Members
// @Produce json
// @Param id path string true "Member id"
// @Success 200 {object} response.Envelope
// @Router /members/{id}/enrollments [get]
func (h *MemberHandler) Enrollments(c *gin.Context) {
	enrollments, err := h.enrollments.ListByMember(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollments, nil)
}
