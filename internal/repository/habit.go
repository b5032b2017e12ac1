package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrHabitNotFound = errors.New("habit not found")

type HabitRepository interface {
	Create(habit *model.Habit) error
	ByID(userID, habitID string) (*model.Habit, error)
	Habits(userID string, includeArchived bool) ([]*model.Habit, error)
	Update(habit *model.Habit) error
	Delete(userID, habitID string) error
	SetArchived(userID, habitID string, archived bool) error

	CreateCheckin(checkin *model.HabitCheckin) error
	CheckinSince(habitID string, since time.Time) (bool, error)
	CheckinBetween(habitID string, from, to time.Time) (bool, error)
	ResetStreak(habitID string) error

	// ActiveStreakHabits returns non-archived daily habits with a positive
	// streak, each joined with its most recent check-in timestamp.
	ActiveStreakHabits() ([]*model.HabitWithCheckin, error)
}

type habitRepository struct {
	db *sqlx.DB
}

func NewHabitRepository(db *sqlx.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	query := `INSERT INTO habits (id, user_id, name, frequency_id, time_preference_id, current_streak, archived, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		habit.ID,
		habit.UserID,
		habit.Name,
		habit.FrequencyID,
		habit.TimePreferenceID,
		habit.CurrentStreak,
		habit.Archived,
		habit.CreatedAt,
		habit.UpdatedAt,
	)

	return err
}

func (r *habitRepository) ByID(userID, habitID string) (*model.Habit, error) {
	habit := &model.Habit{}
	query := `SELECT * FROM habits WHERE id = $1 AND user_id = $2`

	err := r.db.Get(habit, query, habitID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrHabitNotFound
	}

	return habit, err
}

func (r *habitRepository) Habits(userID string, includeArchived bool) ([]*model.Habit, error) {
	var habits []*model.Habit

	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at ASC`
	if !includeArchived {
		query = `SELECT * FROM habits WHERE user_id = $1 AND archived = FALSE ORDER BY created_at ASC`
	}

	err := r.db.Select(&habits, query, userID)
	if err != nil {
		return nil, err
	}

	return habits, nil
}

func (r *habitRepository) Update(habit *model.Habit) error {
	query := `UPDATE habits
	          SET name = $1, frequency_id = $2, time_preference_id = $3, current_streak = $4, updated_at = $5
	          WHERE id = $6 AND user_id = $7`

	result, err := r.db.Exec(query,
		habit.Name,
		habit.FrequencyID,
		habit.TimePreferenceID,
		habit.CurrentStreak,
		time.Now(),
		habit.ID,
		habit.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) Delete(userID, habitID string) error {
	result, err := r.db.Exec(`DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) SetArchived(userID, habitID string, archived bool) error {
	query := `UPDATE habits SET archived = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, archived, time.Now(), habitID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) CreateCheckin(checkin *model.HabitCheckin) error {
	query := `INSERT INTO habit_checkins (id, habit_id, user_id, checked_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, checkin.ID, checkin.HabitID, checkin.UserID, checkin.CheckedAt)
	return err
}

func (r *habitRepository) CheckinSince(habitID string, since time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM habit_checkins WHERE habit_id = $1 AND checked_at >= $2`

	err := r.db.QueryRow(query, habitID, since).Scan(&count)
	return count > 0, err
}

func (r *habitRepository) CheckinBetween(habitID string, from, to time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM habit_checkins WHERE habit_id = $1 AND checked_at >= $2 AND checked_at < $3`

	err := r.db.QueryRow(query, habitID, from, to).Scan(&count)
	return count > 0, err
}

func (r *habitRepository) ResetStreak(habitID string) error {
	query := `UPDATE habits SET current_streak = 0, updated_at = $1 WHERE id = $2`

	_, err := r.db.Exec(query, time.Now(), habitID)
	return err
}

func (r *habitRepository) ActiveStreakHabits() ([]*model.HabitWithCheckin, error) {
	var habits []*model.HabitWithCheckin
	query := `SELECT h.*, (SELECT MAX(c.checked_at) FROM habit_checkins c WHERE c.habit_id = h.id) AS last_checkin
	          FROM habits h
	          JOIN frequencies f ON h.frequency_id = f.id
	          WHERE f.name = $1 AND h.archived = FALSE AND h.current_streak > 0`

	err := r.db.Select(&habits, query, model.FrequencyDaily)
	if err != nil {
		return nil, err
	}

	return habits, nil
}
