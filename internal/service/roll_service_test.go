package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollyard/roll-inventory-api/internal/dto"
	"github.com/rollyard/roll-inventory-api/internal/models"
	appErrors "github.com/rollyard/roll-inventory-api/pkg/errors"
)

type rollStoreMock struct {
	createResp  *models.Roll
	createErr   error
	findResp    *models.Roll
	findErr     error
	deleteResp  *models.Roll
	deleteErr   error
	listResp    []models.Roll
	listErr     error
	addedResp   []models.Roll
	addedErr    error
	removedResp []models.Roll
	removedErr  error

	lastFilter   models.RollFilter
	createCalled bool
	findCalled   bool
}

func (m *rollStoreMock) Create(ctx context.Context, length, weight float64) (*models.Roll, error) {
	m.createCalled = true
	return m.createResp, m.createErr
}

func (m *rollStoreMock) FindByID(ctx context.Context, id int64) (*models.Roll, error) {
	m.findCalled = true
	return m.findResp, m.findErr
}

func (m *rollStoreMock) SoftDelete(ctx context.Context, id int64) (*models.Roll, error) {
	return m.deleteResp, m.deleteErr
}

func (m *rollStoreMock) List(ctx context.Context, filter models.RollFilter) ([]models.Roll, error) {
	m.lastFilter = filter
	return m.listResp, m.listErr
}

func (m *rollStoreMock) ListAddedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error) {
	return m.addedResp, m.addedErr
}

func (m *rollStoreMock) ListRemovedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error) {
	return m.removedResp, m.removedErr
}

func floatPtr(v float64) *float64 { return &v }

func TestRollServiceCreate(t *testing.T) {
	store := &rollStoreMock{
		createResp: &models.Roll{ID: 1, Length: 10, Weight: 20, DateAdded: time.Now().UTC()},
	}
	svc := NewRollService(store, nil, nil, nil)

	roll, err := svc.Create(context.Background(), dto.CreateRollRequest{Length: floatPtr(10), Weight: floatPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), roll.ID)
	assert.True(t, store.createCalled)
}

func TestRollServiceCreateMissingFields(t *testing.T) {
	store := &rollStoreMock{}
	svc := NewRollService(store, nil, nil, nil)

	_, err := svc.Create(context.Background(), dto.CreateRollRequest{Length: floatPtr(10)})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrValidation.Status, appErr.Status)
	assert.False(t, store.createCalled)
}

func TestRollServiceDelete(t *testing.T) {
	removed := time.Now().UTC()
	store := &rollStoreMock{
		deleteResp: &models.Roll{ID: 1, Length: 10, Weight: 20, DateAdded: removed.Add(-2 * time.Hour), DateRemoved: &removed},
	}
	svc := NewRollService(store, nil, nil, nil)

	roll, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, roll.DateRemoved)
}

func TestRollServiceDeleteNotFound(t *testing.T) {
	store := &rollStoreMock{
		deleteErr: sql.ErrNoRows,
		findErr:   sql.ErrNoRows,
	}
	svc := NewRollService(store, nil, nil, nil)

	_, err := svc.Delete(context.Background(), 9999)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.True(t, store.findCalled)
}

func TestRollServiceDeleteAlreadyRemoved(t *testing.T) {
	removed := time.Now().UTC()
	store := &rollStoreMock{
		deleteErr: sql.ErrNoRows,
		findResp:  &models.Roll{ID: 1, DateRemoved: &removed},
	}
	svc := NewRollService(store, nil, nil, nil)

	_, err := svc.Delete(context.Background(), 1)
	require.ErrorIs(t, err, appErrors.ErrAlreadyRemoved)
}

func TestRollServiceDeleteStoreFailure(t *testing.T) {
	store := &rollStoreMock{deleteErr: errors.New("connection reset")}
	svc := NewRollService(store, nil, nil, nil)

	_, err := svc.Delete(context.Background(), 1)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}

func TestRollServiceGetNotFound(t *testing.T) {
	store := &rollStoreMock{findErr: sql.ErrNoRows}
	svc := NewRollService(store, nil, nil, nil)

	_, err := svc.Get(context.Background(), 9999)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestRollServiceGetIdempotent(t *testing.T) {
	store := &rollStoreMock{
		findResp: &models.Roll{ID: 3, Length: 12.5, Weight: 40, DateAdded: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
	}
	svc := NewRollService(store, nil, nil, nil)

	first, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	second, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRollServiceListForwardsFilter(t *testing.T) {
	store := &rollStoreMock{listResp: []models.Roll{}}
	svc := NewRollService(store, nil, nil, nil)

	filter := models.RollFilter{LengthMin: floatPtr(15)}
	rolls, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, rolls)
	require.NotNil(t, store.lastFilter.LengthMin)
	assert.Equal(t, 15.0, *store.lastFilter.LengthMin)
}

func TestRollServiceStatsInvalidRange(t *testing.T) {
	svc := NewRollService(&rollStoreMock{}, nil, nil, nil)

	query := dto.StatsQuery{
		StartDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := svc.StatsInRange(context.Background(), query)
	require.ErrorIs(t, err, appErrors.ErrInvalidRange)
}

func TestRollServiceStatsInRange(t *testing.T) {
	added := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	removedAt := added.Add(2 * time.Hour)
	store := &rollStoreMock{
		addedResp: []models.Roll{
			{ID: 1, Length: 5, Weight: 10, DateAdded: added},
			{ID: 2, Length: 10, Weight: 20, DateAdded: added},
			{ID: 3, Length: 15, Weight: 30, DateAdded: added, DateRemoved: &removedAt},
		},
		removedResp: []models.Roll{
			{ID: 3, Length: 15, Weight: 30, DateAdded: added, DateRemoved: &removedAt},
		},
	}
	svc := NewRollService(store, nil, nil, nil)

	query := dto.StatsQuery{StartDate: added.Add(-time.Hour), EndDate: added.Add(24 * time.Hour)}
	stats, err := svc.StatsInRange(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.AddedCount)
	assert.Equal(t, 1, stats.RemovedCount)
	assert.Equal(t, 10.0, stats.AvgLength)
	assert.Equal(t, 60.0, stats.TotalWeight)
	assert.Equal(t, 2.0, stats.MinGap)
	assert.Equal(t, 2.0, stats.MaxGap)
}

func TestRollServiceStatsEmptyWindow(t *testing.T) {
	store := &rollStoreMock{addedResp: []models.Roll{}, removedResp: []models.Roll{}}
	svc := NewRollService(store, nil, nil, nil)

	query := dto.StatsQuery{
		StartDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	stats, err := svc.StatsInRange(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.AddedCount)
	assert.Zero(t, stats.AvgLength)
	assert.Zero(t, stats.MinLength)
	assert.Zero(t, stats.MaxWeight)
	assert.Zero(t, stats.TotalWeight)
	assert.Zero(t, stats.MinGap)
}
