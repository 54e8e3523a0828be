package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type departmentService interface {
	List(ctx context.Context) ([]models.DepartmentDetail, error)
}

// DepartmentHandler exposes the department listing.
type DepartmentHandler struct {
	service departmentService
}

// NewDepartmentHandler builds a new handler.
func NewDepartmentHandler(service departmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// List godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	departments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, departments, nil)
}
