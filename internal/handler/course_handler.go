package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type courseService interface {
	ListByDepartment(ctx context.Context, department string) ([]models.Course, error)
	ListByName(ctx context.Context, name string) ([]models.Course, error)
	ListDetails(ctx context.Context) ([]models.CourseDetail, error)
}

// CourseHandler exposes course lookups.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler builds a new handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List courses
// @Description Filters by exact department name or exact course name. Without filters every course is returned with department, instructor and enrollment count.
// @Tags Courses
// @Produce json
// @Param department query string false "Department name"
// @Param name query string false "Course name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	department, hasDepartment := c.GetQuery("department")
	name, hasName := c.GetQuery("name")

	var (
		data interface{}
		err  error
	)
	switch {
	case hasDepartment && hasName:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "use either department or name, not both"))
		return
	case hasDepartment:
		data, err = h.service.ListByDepartment(c.Request.Context(), strings.TrimSpace(department))
	case hasName:
		data, err = h.service.ListByName(c.Request.Context(), strings.TrimSpace(name))
	default:
		data, err = h.service.ListDetails(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}
