package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rollyard/roll-inventory-api/internal/dto"
	"github.com/rollyard/roll-inventory-api/internal/models"
	appErrors "github.com/rollyard/roll-inventory-api/pkg/errors"
)

const statsCachePattern = "stats:*"

type rollStore interface {
	Create(ctx context.Context, length, weight float64) (*models.Roll, error)
	FindByID(ctx context.Context, id int64) (*models.Roll, error)
	SoftDelete(ctx context.Context, id int64) (*models.Roll, error)
	List(ctx context.Context, filter models.RollFilter) ([]models.Roll, error)
	ListAddedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error)
	ListRemovedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error)
}

// RollService orchestrates roll operations: validation, error mapping and
// the window aggregation behind the stats endpoint.
type RollService struct {
	repo      rollStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRollService builds a RollService with sane defaults. The cache may be
// nil when stats caching is disabled.
func NewRollService(repo rollStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RollService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RollService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create registers a new roll in the inventory.
func (s *RollService) Create(ctx context.Context, req dto.CreateRollRequest) (*models.Roll, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "length and weight are required")
	}

	roll, err := s.repo.Create(ctx, *req.Length, *req.Weight)
	if err != nil {
		s.logger.Error("create roll failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create roll")
	}

	s.invalidateStats(ctx)
	return roll, nil
}

// Delete soft-deletes a roll, stamping its removal time exactly once.
func (s *RollService) Delete(ctx context.Context, id int64) (*models.Roll, error) {
	roll, err := s.repo.SoftDelete(ctx, id)
	if err == nil {
		s.invalidateStats(ctx)
		return roll, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("delete roll failed", zap.Int64("roll_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roll")
	}

	// The conditional update matched nothing: either the roll does not
	// exist or it was already removed.
	if _, lookupErr := s.repo.FindByID(ctx, id); lookupErr != nil {
		if errors.Is(lookupErr, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("delete roll lookup failed", zap.Int64("roll_id", id), zap.Error(lookupErr))
		return nil, appErrors.Wrap(lookupErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete roll")
	}
	return nil, appErrors.ErrAlreadyRemoved
}

// Get fetches a single roll by ID.
func (s *RollService) Get(ctx context.Context, id int64) (*models.Roll, error) {
	roll, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		s.logger.Error("get roll failed", zap.Int64("roll_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch roll")
	}
	return roll, nil
}

// List returns rolls matching the filter; an empty result is a valid answer,
// not an error.
func (s *RollService) List(ctx context.Context, filter models.RollFilter) ([]models.Roll, error) {
	rolls, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("list rolls failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rolls")
	}
	return rolls, nil
}

// StatsInRange computes the aggregate over an inclusive [start, end] window.
func (s *RollService) StatsInRange(ctx context.Context, query dto.StatsQuery) (*models.RollStats, error) {
	if query.StartDate.After(query.EndDate) {
		return nil, appErrors.ErrInvalidRange
	}

	key := statsCacheKey(query)
	var cached models.RollStats
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	added, err := s.repo.ListAddedBetween(ctx, query.StartDate, query.EndDate)
	if err != nil {
		s.logger.Error("stats added window failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}
	removed, err := s.repo.ListRemovedBetween(ctx, query.StartDate, query.EndDate)
	if err != nil {
		s.logger.Error("stats removed window failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute stats")
	}

	stats := computeRollStats(added, removed)
	_ = s.cache.Set(ctx, key, stats, 0)
	return &stats, nil
}

func (s *RollService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func statsCacheKey(query dto.StatsQuery) string {
	return fmt.Sprintf("stats:%d:%d", query.StartDate.Unix(), query.EndDate.Unix())
}
