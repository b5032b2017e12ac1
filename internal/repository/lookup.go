package repository

import (
	"context"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

// LookupRepository reads the admin-curated reference tables. Queries take a
// context because the lookup loader fans them out concurrently.
type LookupRepository interface {
	Categories(ctx context.Context) ([]*model.Category, error)
	Timeframes(ctx context.Context) ([]*model.Timeframe, error)
	Frequencies(ctx context.Context) ([]*model.Frequency, error)
	TimePreferences(ctx context.Context) ([]*model.TimePreference, error)
}

type lookupRepository struct {
	db *sqlx.DB
}

func NewLookupRepository(db *sqlx.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) Categories(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	query := `SELECT * FROM categories WHERE active = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *lookupRepository) Timeframes(ctx context.Context) ([]*model.Timeframe, error) {
	var timeframes []*model.Timeframe
	query := `SELECT * FROM timeframes WHERE active = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &timeframes, query)
	if err != nil {
		return nil, err
	}

	return timeframes, nil
}

func (r *lookupRepository) Frequencies(ctx context.Context) ([]*model.Frequency, error) {
	var frequencies []*model.Frequency
	query := `SELECT * FROM frequencies WHERE active = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &frequencies, query)
	if err != nil {
		return nil, err
	}

	return frequencies, nil
}

func (r *lookupRepository) TimePreferences(ctx context.Context) ([]*model.TimePreference, error) {
	var preferences []*model.TimePreference
	query := `SELECT * FROM time_preferences WHERE active = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &preferences, query)
	if err != nil {
		return nil, err
	}

	return preferences, nil
}
