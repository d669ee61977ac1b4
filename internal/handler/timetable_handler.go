package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-dev/timetable-api/internal/dto"
	"github.com/campus-dev/timetable-api/internal/service"
	appErrors "github.com/campus-dev/timetable-api/pkg/errors"
	"github.com/campus-dev/timetable-api/pkg/response"
)

const maxLectureRows = 512

type timetableGenerator interface {
	Generate(ctx context.Context, rows []dto.LectureRequest) (*dto.GenerateTimetableResponse, error)
	GetTimetable(ctx context.Context) ([]dto.TimetableEntry, error)
}

type timetableExporter interface {
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// TimetableHandler exposes timetable generation and retrieval endpoints.
type TimetableHandler struct {
	service  timetableGenerator
	exporter timetableExporter
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableGenerator, exporter timetableExporter) *TimetableHandler {
	return &TimetableHandler{service: svc, exporter: exporter}
}

// Generate godoc
// @Summary Generate the weekly timetable
// @Description Wipes the stored timetable and schedules the posted lecture demand rows. Unfulfilled rows are returned in skippedSlots, never dropped silently.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body []dto.LectureRequest true "Lecture demand rows"
// @Success 200 {object} response.Envelope
// @Router /generate-timetable [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var rows []dto.LectureRequest
	if err := c.ShouldBindJSON(&rows); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(rows) > maxLectureRows {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "lecture rows exceed supported limit"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), rows)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Timetable godoc
// @Summary Get the stored timetable
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable [get]
func (h *TimetableHandler) Timetable(c *gin.Context) {
	entries, err := h.service.GetTimetable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Export godoc
// @Summary Export the stored timetable
// @Tags Timetable
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf, default csv)"
// @Success 200 {file} file
// @Router /timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	file, err := h.exporter.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
