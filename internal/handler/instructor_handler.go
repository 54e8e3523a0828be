package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type instructorService interface {
	List(ctx context.Context, sortColumn, direction string) ([]models.Instructor, error)
}

// InstructorHandler exposes the instructor listing.
type InstructorHandler struct {
	service instructorService
}

// NewInstructorHandler builds a new handler.
func NewInstructorHandler(service instructorService) *InstructorHandler {
	return &InstructorHandler{service: service}
}

// List godoc
// @Summary List instructors
// @Description sort accepts id, first_name, last_name, birth_date or email (any case, with or without underscores). order is asc or desc; anything but asc sorts descending.
// @Tags Instructors
// @Produce json
// @Param sort query string false "Sort column"
// @Param order query string false "Sort direction"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /instructors [get]
func (h *InstructorHandler) List(c *gin.Context) {
	// The standard parser silently drops pairs holding a raw ';', which would
	// turn "sort=Col;DROP ..." into an unsorted listing.
	query, err := url.ParseQuery(c.Request.URL.RawQuery)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidSort.Code, appErrors.ErrInvalidSort.Status, "malformed sort query"))
		return
	}

	instructors, err := h.service.List(c.Request.Context(), query.Get("sort"), query.Get("order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructors, nil)
}
