package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-dev/timetable-api/internal/dto"
	"github.com/campus-dev/timetable-api/internal/service"
)

type stubTimetableService struct {
	resp    *dto.GenerateTimetableResponse
	entries []dto.TimetableEntry
	err     error

	gotRows []dto.LectureRequest
}

func (s *stubTimetableService) Generate(ctx context.Context, rows []dto.LectureRequest) (*dto.GenerateTimetableResponse, error) {
	s.gotRows = rows
	return s.resp, s.err
}

func (s *stubTimetableService) GetTimetable(ctx context.Context) ([]dto.TimetableEntry, error) {
	return s.entries, s.err
}

type stubExportService struct {
	file *service.ExportFile
	err  error
}

func (s *stubExportService) Export(ctx context.Context, format string) (*service.ExportFile, error) {
	return s.file, s.err
}

func newTimetableRouter(svc *stubTimetableService, exporter *stubExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTimetableHandler(svc, exporter)
	router := gin.New()
	router.POST("/api/generate-timetable", h.Generate)
	router.GET("/api/timetable", h.Timetable)
	router.GET("/api/timetable/export", h.Export)
	return router
}

func TestTimetableHandlerGenerate(t *testing.T) {
	svc := &stubTimetableService{resp: &dto.GenerateTimetableResponse{Passes: 2}}
	router := newTimetableRouter(svc, &stubExportService{})

	body := `[{"subjectName":"Math","sectionId":1,"duration":1,"frequency":1,"facultyIds":[1]}]`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-timetable", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.gotRows, 1)
	assert.Equal(t, "Math", svc.gotRows[0].SubjectName)

	var envelope struct {
		Data dto.GenerateTimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Passes)
}

func TestTimetableHandlerGenerateRejectsMalformedJSON(t *testing.T) {
	router := newTimetableRouter(&stubTimetableService{}, &stubExportService{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate-timetable", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableHandlerTimetable(t *testing.T) {
	svc := &stubTimetableService{entries: []dto.TimetableEntry{{ID: 1, SubjectName: "Math"}}}
	router := newTimetableRouter(svc, &stubExportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/timetable", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subjectName":"Math"`)
}

func TestTimetableHandlerExport(t *testing.T) {
	exporter := &stubExportService{file: &service.ExportFile{
		Content:     []byte("Day,Start\n"),
		ContentType: "text/csv",
		Filename:    "timetable.csv",
	}}
	router := newTimetableRouter(&stubTimetableService{}, exporter)

	req := httptest.NewRequest(http.MethodGet, "/api/timetable/export?format=csv", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timetable.csv")
}
