package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Enrollments by date",
		Headers: []string{"Date", "Count"},
		Rows: [][]string{
			{"2024-09-01", "6"},
			{"2024-09-02", "3"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	assert.Equal(t, "application/pdf", f.ContentType())

	_, err = ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	body, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Date,Count\n2024-09-01,6\n2024-09-02,3\n", string(body))
}

func TestCSVExporterQuotesCells(t *testing.T) {
	data := Dataset{Headers: []string{"Name"}, Rows: [][]string{{"Lee, Sam"}}}
	body, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Name\n\"Lee, Sam\"\n", string(body))
}

func TestExportersRejectRaggedRows(t *testing.T) {
	data := Dataset{Headers: []string{"A", "B"}, Rows: [][]string{{"only one"}}}
	_, err := NewCSVExporter().Render(data)
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(data)
	assert.Error(t, err)

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	body, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
