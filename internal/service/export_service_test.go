package service

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lms-admin-api/internal/models"
	"github.com/noah-isme/lms-admin-api/pkg/export"
)

func TestExportServiceStudentRosterCSV(t *testing.T) {
	created := time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	repo := newFakeStudentRepo(models.Student{ID: 1, FullName: "Ann Lee", Email: strPtr("ann@example.com"), Status: models.StudentStatusActive, CreatedAt: created})
	svc := NewExportService(NewStudentService(repo, nil, nil), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.StudentRoster(context.Background(), &buf, export.FormatCSV, ListQuery{Search: "ann"}))

	body := strings.TrimPrefix(buf.String(), "\ufeff")
	assert.Equal(t, "ID,Full name,Email,Phone,Status,Registered\n1,Ann Lee,ann@example.com,,active,2025-09-01\n", body)
	assert.Equal(t, "ann", repo.lastFilter.Search)
}

func TestExportServiceStudentRosterPDF(t *testing.T) {
	repo := newFakeStudentRepo(models.Student{ID: 1, FullName: "Ann Lee", Status: models.StudentStatusActive})
	svc := NewExportService(NewStudentService(repo, nil, nil), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.StudentRoster(context.Background(), &buf, export.FormatPDF, ListQuery{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(NewStudentService(newFakeStudentRepo(), nil, nil), nil)

	var buf bytes.Buffer
	err := svc.StudentRoster(context.Background(), &buf, export.Format("xml"), ListQuery{})
	requireAppError(t, err, http.StatusBadRequest, "format must be csv or pdf.")
}

func TestExportServiceRosterFilename(t *testing.T) {
	svc := NewExportService(nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, "students-20250901.csv", svc.RosterFilename(export.FormatCSV))
}
