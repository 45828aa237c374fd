package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollyard/roll-inventory-api/internal/models"
)

func newRollRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func rollRows(rolls ...models.Roll) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "length", "weight", "date_added", "date_removed"})
	for _, r := range rolls {
		var removed interface{}
		if r.DateRemoved != nil {
			removed = *r.DateRemoved
		}
		rows.AddRow(r.ID, r.Length, r.Weight, r.DateAdded, removed)
	}
	return rows
}

func TestRollRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	added := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rolls (length, weight, date_added) VALUES ($1, $2, $3) RETURNING id, length, weight, date_added, date_removed")).
		WithArgs(10.0, 20.0, sqlmock.AnyArg()).
		WillReturnRows(rollRows(models.Roll{ID: 1, Length: 10, Weight: 20, DateAdded: added}))

	roll, err := repo.Create(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), roll.ID)
	assert.Equal(t, 10.0, roll.Length)
	assert.Nil(t, roll.DateRemoved)
	assert.WithinDuration(t, time.Now().UTC(), roll.DateAdded, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(rollRows(models.Roll{ID: 7, Length: 5, Weight: 8, DateAdded: time.Now()}))

	roll, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), roll.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE id = $1")).
		WithArgs(int64(9999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9999)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositorySoftDelete(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	added := time.Now().UTC().Add(-2 * time.Hour)
	removed := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE rolls SET date_removed = $2 WHERE id = $1 AND date_removed IS NULL RETURNING id, length, weight, date_added, date_removed")).
		WithArgs(int64(1), sqlmock.AnyArg()).
		WillReturnRows(rollRows(models.Roll{ID: 1, Length: 10, Weight: 20, DateAdded: added, DateRemoved: &removed}))

	roll, err := repo.SoftDelete(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, roll.DateRemoved)
	assert.True(t, roll.Removed())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositorySoftDeleteNoMatch(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	// Either a missing roll or an already-removed one leaves the
	// conditional update without a matching row.
	mock.ExpectQuery("UPDATE rolls SET date_removed").
		WithArgs(int64(42), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.SoftDelete(context.Background(), 42)
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryListNoFilters(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls ORDER BY id ASC")).
		WillReturnRows(rollRows(
			models.Roll{ID: 1, Length: 5, Weight: 10, DateAdded: time.Now()},
			models.Roll{ID: 2, Length: 15, Weight: 30, DateAdded: time.Now()},
		))

	rolls, err := repo.List(context.Background(), models.RollFilter{})
	require.NoError(t, err)
	assert.Len(t, rolls, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryListLengthBounds(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	lengthMin := 15.0
	lengthMax := 30.0
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE length >= $1 AND length <= $2 ORDER BY id ASC")).
		WithArgs(lengthMin, lengthMax).
		WillReturnRows(rollRows(models.Roll{ID: 2, Length: 15, Weight: 30, DateAdded: time.Now()}))

	rolls, err := repo.List(context.Background(), models.RollFilter{LengthMin: &lengthMin, LengthMax: &lengthMax})
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.Equal(t, int64(2), rolls[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryListRemovedBound(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	removedMin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE date_removed >= $1 ORDER BY id ASC")).
		WithArgs(removedMin).
		WillReturnRows(rollRows())

	rolls, err := repo.List(context.Background(), models.RollFilter{DateRemovedMin: &removedMin})
	require.NoError(t, err)
	assert.Empty(t, rolls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollRepositoryWindowSelects(t *testing.T) {
	db, mock, cleanup := newRollRepoMock(t)
	defer cleanup()
	repo := NewRollRepository(db, nil)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE date_added BETWEEN $1 AND $2 ORDER BY id ASC")).
		WithArgs(start, end).
		WillReturnRows(rollRows(models.Roll{ID: 1, Length: 5, Weight: 10, DateAdded: start}))

	added, err := repo.ListAddedBetween(context.Background(), start, end)
	require.NoError(t, err)
	assert.Len(t, added, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, length, weight, date_added, date_removed FROM rolls WHERE date_removed BETWEEN $1 AND $2 ORDER BY id ASC")).
		WithArgs(start, end).
		WillReturnRows(rollRows())

	removed, err := repo.ListRemovedBetween(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
