package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contoso-university-api/internal/service"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

type reportServiceMock struct {
	format string
}

func (m *reportServiceMock) EnrollmentsByDate(ctx context.Context, format string) (*service.Report, error) {
	m.format = format
	return &service.Report{Filename: "enrollments-by-date-20240903.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Date,Enrollments\n")}, nil
}

func (m *reportServiceMock) StudentSummary(ctx context.Context, format string) (*service.Report, error) {
	m.format = format
	return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}

func TestReportHandlerServesAttachment(t *testing.T) {
	svc := &reportServiceMock{}
	c, w := newTestContext(http.MethodGet, "/reports/enrollments-by-date?format=csv", "")
	NewReportHandler(svc).EnrollmentsByDate(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.format)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "enrollments-by-date-20240903.csv")
	assert.Equal(t, "Date,Enrollments\n", w.Body.String())
}

func TestReportHandlerBadFormat(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/reports/student-summary?format=xlsx", "")
	NewReportHandler(&reportServiceMock{}).StudentSummary(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
