package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/service"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

type studentServiceMock struct {
	lastSearch string
	lastID     int64
	lastUpdate service.UpdateStudentRequest
	updated    bool
	err        error
}

func (m *studentServiceMock) Search(ctx context.Context, search string) ([]models.Student, error) {
	m.lastSearch = search
	return []models.Student{{ID: 1, FirstName: "Alice", LastName: "Williams"}}, m.err
}

func (m *studentServiceMock) Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error) {
	return []models.StudentEnrollmentSummary{{StudentID: 1, Date: "2024-09-01", FullName: "Alice Williams", Count: 2}}, m.err
}

func (m *studentServiceMock) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.StudentDetail{Student: models.Student{ID: id}}, nil
}

func (m *studentServiceMock) Update(ctx context.Context, id int64, req service.UpdateStudentRequest) (*service.UpdateStudentResult, error) {
	m.lastID, m.lastUpdate = id, req
	if m.err != nil {
		return nil, m.err
	}
	return &service.UpdateStudentResult{Student: models.Student{ID: id}, Updated: m.updated}, nil
}

func (m *studentServiceMock) Delete(ctx context.Context, id int64) error {
	m.lastID = id
	return m.err
}

func TestStudentHandlerSearch(t *testing.T) {
	svc := &studentServiceMock{}
	c, w := newTestContext(http.MethodGet, "/students?search=ali+will", "")
	NewStudentHandler(svc).Search(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ali will", svc.lastSearch)
}

func TestStudentHandlerSummary(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/students/summary", "")
	NewStudentHandler(&studentServiceMock{}).Summary(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"date":"2024-09-01"`)
}

func TestStudentHandlerGetRejectsBadID(t *testing.T) {
	svc := &studentServiceMock{}
	c, w := newTestContext(http.MethodGet, "/students/abc", "", gin.Param{Key: "id", Value: "abc"})
	NewStudentHandler(svc).Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.lastID)
}

func TestStudentHandlerUpdate(t *testing.T) {
	svc := &studentServiceMock{updated: false}
	c, w := newTestContext(http.MethodPut, "/students/1", `{"name":"Cher","email":""}`, gin.Param{Key: "id", Value: "1"})
	NewStudentHandler(svc).Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cher", svc.lastUpdate.Name)
	assert.Contains(t, string(decode(t, w).Data), `"updated":false`)
}

func TestStudentHandlerUpdateInvalidBody(t *testing.T) {
	c, w := newTestContext(http.MethodPut, "/students/1", `{"name":`, gin.Param{Key: "id", Value: "1"})
	NewStudentHandler(&studentServiceMock{}).Update(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerDelete(t *testing.T) {
	svc := &studentServiceMock{}
	c, w := newTestContext(http.MethodDelete, "/students/3", "", gin.Param{Key: "id", Value: "3"})
	NewStudentHandler(svc).Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, int64(3), svc.lastID)
}

func TestStudentHandlerDeleteNotFound(t *testing.T) {
	svc := &studentServiceMock{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")}
	c, w := newTestContext(http.MethodDelete, "/students/999999", "", gin.Param{Key: "id", Value: "999999"})
	NewStudentHandler(svc).Delete(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
}
