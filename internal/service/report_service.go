package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
	"github.com/noah-isme/contoso-university-api/pkg/export"
)

type enrollmentCounter interface {
	CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error)
}

type studentSummarizer interface {
	Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// Report is a rendered export ready to be served as an attachment.
type Report struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders enrollment reports as CSV or PDF.
type ReportService struct {
	enrollments enrollmentCounter
	students    studentSummarizer
	csv         csvRenderer
	pdf         pdfRenderer
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportService constructs a ReportService. Nil renderers fall back to the
// default exporters.
func NewReportService(enrollments enrollmentCounter, students studentSummarizer, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ReportService{
		enrollments: enrollments,
		students:    students,
		csv:         csv,
		pdf:         pdf,
		logger:      logger,
		now:         time.Now,
	}
}

// EnrollmentsByDate renders the enrollment counts per date.
func (s *ReportService) EnrollmentsByDate(ctx context.Context, format string) (*Report, error) {
	f, err := parseReportFormat(format)
	if err != nil {
		return nil, err
	}
	counts, err := s.enrollments.CountsByDate(ctx)
	if err != nil {
		return nil, storeError(err, "failed to count enrollments")
	}

	data := export.Dataset{
		Title:   "Enrollments by date",
		Headers: []string{"Date", "Enrollments"},
		Rows:    make([][]string, 0, len(counts)),
	}
	for _, c := range counts {
		data.Rows = append(data.Rows, []string{c.Date.Format(models.DateLayout), strconv.Itoa(c.Count)})
	}
	return s.render("enrollments-by-date", f, data)
}

// StudentSummary renders enrollments per student per date.
func (s *ReportService) StudentSummary(ctx context.Context, format string) (*Report, error) {
	f, err := parseReportFormat(format)
	if err != nil {
		return nil, err
	}
	rows, err := s.students.Summary(ctx)
	if err != nil {
		return nil, storeError(err, "failed to build student summary")
	}

	data := export.Dataset{
		Title:   "Student enrollment summary",
		Headers: []string{"Student ID", "Date", "Full name", "Email", "Enrollments"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(r.StudentID, 10),
			r.Date,
			r.FullName,
			r.Email,
			strconv.Itoa(r.Count),
		})
	}
	return s.render("student-summary", f, data)
}

func (s *ReportService) render(name string, format export.Format, data export.Dataset) (*Report, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(data)
	default:
		body, err = s.csv.Render(data)
	}
	if err != nil {
		s.logger.Error("render report failed", zap.String("report", name), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return &Report{
		Filename:    fmt.Sprintf("%s-%s.%s", name, s.now().UTC().Format("20060102"), format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

func parseReportFormat(raw string) (export.Format, error) {
	f, err := export.ParseFormat(raw)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "format must be csv or pdf")
	}
	return f, nil
}
