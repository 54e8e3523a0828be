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

type studentService interface {
	Search(ctx context.Context, search string) ([]models.Student, error)
	Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error)
	Get(ctx context.Context, id int64) (*models.StudentDetail, error)
	Update(ctx context.Context, id int64, req service.UpdateStudentRequest) (*service.UpdateStudentResult, error)
	Delete(ctx context.Context, id int64) error
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler builds a new handler.
func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// Search godoc
// @Summary Search students by name
// @Description Two or more words match first name and last name respectively; one word matches either. Empty returns every student.
// @Tags Students
// @Produce json
// @Param search query string false "Name search"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) Search(c *gin.Context) {
	students, err := h.service.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// Summary godoc
// @Summary Enrollments per student per date
// @Tags Students
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students/summary [get]
func (h *StudentHandler) Summary(c *gin.Context) {
	rows, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Get godoc
// @Summary Get student with enrollments
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Update godoc
// @Summary Update student name and email
// @Description The name is split on the first space. A single-word name leaves the student unchanged and returns updated=false.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid student payload"))
		return
	}
	result, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete student and their enrollments
// @Tags Students
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
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
