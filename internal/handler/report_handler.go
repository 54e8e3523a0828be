package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/contoso-university-api/internal/service"
	"github.com/noah-isme/contoso-university-api/pkg/response"
)

type reportService interface {
	EnrollmentsByDate(ctx context.Context, format string) (*service.Report, error)
	StudentSummary(ctx context.Context, format string) (*service.Report, error)
}

// ReportHandler exposes downloadable reports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// EnrollmentsByDate godoc
// @Summary Download enrollment counts per date
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/enrollments-by-date [get]
func (h *ReportHandler) EnrollmentsByDate(c *gin.Context) {
	h.serve(c, h.service.EnrollmentsByDate)
}

// StudentSummary godoc
// @Summary Download the student enrollment summary
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/student-summary [get]
func (h *ReportHandler) StudentSummary(c *gin.Context) {
	h.serve(c, h.service.StudentSummary)
}

func (h *ReportHandler) serve(c *gin.Context, build func(context.Context, string) (*service.Report, error)) {
	report, err := build(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Body)
}
