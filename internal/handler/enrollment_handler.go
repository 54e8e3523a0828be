package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/service"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type enrollmentService interface {
	CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error)
	EnrollOrCreate(ctx context.Context, req service.EnrollRequest) (*models.EnrollOrCreateResult, error)
	Delete(ctx context.Context, id int64) error
}

type enrollmentDateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler builds a new handler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// CountsByDate godoc
// @Summary Enrollment counts per date
// @Description Ordered by date ascending; dates are YYYY-MM-DD.
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/by-date [get]
func (h *EnrollmentHandler) CountsByDate(c *gin.Context) {
	counts, err := h.service.CountsByDate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]enrollmentDateCount, 0, len(counts))
	for _, ct := range counts {
		out = append(out, enrollmentDateCount{Date: ct.Date.Format(models.DateLayout), Count: ct.Count})
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// Enroll godoc
// @Summary Enroll a student, creating them if needed
// @Description The student is matched on first name, last name, birth date and email. Repeating the call adds another enrollment for the same student.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}
	result, err := h.service.EnrollOrCreate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Delete an enrollment
// @Tags Enrollments
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
