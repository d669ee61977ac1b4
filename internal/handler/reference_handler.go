package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-dev/timetable-api/internal/dto"
	"github.com/campus-dev/timetable-api/pkg/response"
)

type referenceProvider interface {
	GetReferenceData(ctx context.Context) (*dto.ReferenceDataResponse, error)
}

// ReferenceHandler serves the reference collections behind the scheduling UI.
type ReferenceHandler struct {
	service referenceProvider
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(svc referenceProvider) *ReferenceHandler {
	return &ReferenceHandler{service: svc}
}

// ReferenceData godoc
// @Summary Get scheduling reference data
// @Description Returns faculty, rooms, sections and timeslots in one payload.
// @Tags Reference
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reference-data [get]
func (h *ReferenceHandler) ReferenceData(c *gin.Context) {
	data, err := h.service.GetReferenceData(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}
