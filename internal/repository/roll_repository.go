package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rollyard/roll-inventory-api/internal/models"
)

const rollColumns = "id, length, weight, date_added, date_removed"

// QueryObserver receives per-query timings. Satisfied by the metrics service.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// RollRepository manages persistence for rolls. It is the sole mediator
// between typed roll operations and the rolls table.
type RollRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewRollRepository constructs a RollRepository. The observer may be nil.
func NewRollRepository(db *sqlx.DB, observer QueryObserver) *RollRepository {
	return &RollRepository{db: db, observer: observer}
}

func (r *RollRepository) observe(label string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveDBQuery(label, time.Since(start))
	}
}

// Create inserts a new roll stamped with the current time and returns the
// stored record with its assigned ID.
func (r *RollRepository) Create(ctx context.Context, length, weight float64) (*models.Roll, error) {
	defer r.observe("roll_create", time.Now())

	const query = `INSERT INTO rolls (length, weight, date_added) VALUES ($1, $2, $3) RETURNING ` + rollColumns
	var roll models.Roll
	if err := r.db.GetContext(ctx, &roll, query, length, weight, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("create roll: %w", err)
	}
	return &roll, nil
}

// FindByID fetches a roll by ID. Callers distinguish absence via
// sql.ErrNoRows in the returned chain.
func (r *RollRepository) FindByID(ctx context.Context, id int64) (*models.Roll, error) {
	defer r.observe("roll_find_by_id", time.Now())

	const query = `SELECT ` + rollColumns + ` FROM rolls WHERE id = $1`
	var roll models.Roll
	if err := r.db.GetContext(ctx, &roll, query, id); err != nil {
		return nil, err
	}
	return &roll, nil
}

// SoftDelete stamps date_removed on an active roll and returns the updated
// record. The conditional update makes the check-then-set atomic: of two
// concurrent deletes on the same id, exactly one matches the row. No row
// matched surfaces as sql.ErrNoRows, covering both a missing roll and one
// already removed; callers disambiguate with FindByID.
func (r *RollRepository) SoftDelete(ctx context.Context, id int64) (*models.Roll, error) {
	defer r.observe("roll_soft_delete", time.Now())

	const query = `UPDATE rolls SET date_removed = $2 WHERE id = $1 AND date_removed IS NULL RETURNING ` + rollColumns
	var roll models.Roll
	if err := r.db.GetContext(ctx, &roll, query, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	return &roll, nil
}

// List returns rolls matching the filter, ordered by id for deterministic
// results. An empty filter returns the full inventory.
func (r *RollRepository) List(ctx context.Context, filter models.RollFilter) ([]models.Roll, error) {
	defer r.observe("roll_list", time.Now())

	var conditions []string
	var args []interface{}

	addBound := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, len(args)+1))
		args = append(args, value)
	}

	if filter.LengthMin != nil {
		addBound("length >= $%d", *filter.LengthMin)
	}
	if filter.LengthMax != nil {
		addBound("length <= $%d", *filter.LengthMax)
	}
	if filter.WeightMin != nil {
		addBound("weight >= $%d", *filter.WeightMin)
	}
	if filter.WeightMax != nil {
		addBound("weight <= $%d", *filter.WeightMax)
	}
	if filter.DateAddedMin != nil {
		addBound("date_added >= $%d", *filter.DateAddedMin)
	}
	if filter.DateAddedMax != nil {
		addBound("date_added <= $%d", *filter.DateAddedMax)
	}
	if filter.DateRemovedMin != nil {
		addBound("date_removed >= $%d", *filter.DateRemovedMin)
	}
	if filter.DateRemovedMax != nil {
		addBound("date_removed <= $%d", *filter.DateRemovedMax)
	}

	query := "SELECT " + rollColumns + " FROM rolls"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	rolls := []models.Roll{}
	if err := r.db.SelectContext(ctx, &rolls, query, args...); err != nil {
		return nil, fmt.Errorf("list rolls: %w", err)
	}
	return rolls, nil
}

// ListAddedBetween returns rolls whose date_added falls inside the inclusive
// window.
func (r *RollRepository) ListAddedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error) {
	defer r.observe("roll_list_added_between", time.Now())

	const query = `SELECT ` + rollColumns + ` FROM rolls WHERE date_added BETWEEN $1 AND $2 ORDER BY id ASC`
	rolls := []models.Roll{}
	if err := r.db.SelectContext(ctx, &rolls, query, start, end); err != nil {
		return nil, fmt.Errorf("list rolls added between: %w", err)
	}
	return rolls, nil
}

// ListRemovedBetween returns rolls whose date_removed falls inside the
// inclusive window, regardless of when they were added.
func (r *RollRepository) ListRemovedBetween(ctx context.Context, start, end time.Time) ([]models.Roll, error) {
	defer r.observe("roll_list_removed_between", time.Now())

	const query = `SELECT ` + rollColumns + ` FROM rolls WHERE date_removed BETWEEN $1 AND $2 ORDER BY id ASC`
	rolls := []models.Roll{}
	if err := r.db.SelectContext(ctx, &rolls, query, start, end); err != nil {
		return nil, fmt.Errorf("list rolls removed between: %w", err)
	}
	return rolls, nil
}
