package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campus-dev/timetable-api/internal/dto"
	appErrors "github.com/campus-dev/timetable-api/pkg/errors"
)

const referenceCacheKey = "reference:data"

// ReferenceService serves the reference collections the scheduling UI needs,
// optionally backed by the cache.
type ReferenceService struct {
	faculty   facultyLister
	rooms     roomLister
	sections  sectionLister
	timeslots timeslotLister
	cache     *CacheService
	ttl       time.Duration
	logger    *zap.Logger
}

// NewReferenceService constructs a ReferenceService.
func NewReferenceService(
	faculty facultyLister,
	rooms roomLister,
	sections sectionLister,
	timeslots timeslotLister,
	cache *CacheService,
	ttl time.Duration,
	logger *zap.Logger,
) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReferenceService{
		faculty:   faculty,
		rooms:     rooms,
		sections:  sections,
		timeslots: timeslots,
		cache:     cache,
		ttl:       ttl,
		logger:    logger,
	}
}

// GetReferenceData returns faculty, rooms, sections and timeslots.
func (s *ReferenceService) GetReferenceData(ctx context.Context) (*dto.ReferenceDataResponse, error) {
	var cached dto.ReferenceDataResponse
	if hit, err := s.cache.Get(ctx, referenceCacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	faculty, err := s.faculty.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	sections, err := s.sections.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sections")
	}
	timeslots, err := s.timeslots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}

	resp := &dto.ReferenceDataResponse{
		Faculty:   faculty,
		Rooms:     rooms,
		Sections:  sections,
		Timeslots: timeslots,
	}

	if err := s.cache.Set(ctx, referenceCacheKey, resp, s.ttl); err != nil {
		s.logger.Warn("failed to cache reference data", zap.Error(err))
	}

	return resp, nil
}

// InvalidateCache drops the cached reference payload, used after seeding.
func (s *ReferenceService) InvalidateCache(ctx context.Context) error {
	return s.cache.Invalidate(ctx, referenceCacheKey)
}
