package model

import (
	"time"
)

type Habit struct {
	ID               string    `db:"id" json:"id"`
	UserID           string    `db:"user_id" json:"user_id"`
	Name             string    `db:"name" json:"name"`
	FrequencyID      *string   `db:"frequency_id" json:"frequency_id"`
	TimePreferenceID *string   `db:"time_preference_id" json:"time_preference_id"`
	CurrentStreak    int       `db:"current_streak" json:"current_streak"`
	Archived         bool      `db:"archived" json:"archived"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

type HabitCheckin struct {
	ID        string    `db:"id" json:"id"`
	HabitID   string    `db:"habit_id" json:"habit_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	CheckedAt time.Time `db:"checked_at" json:"checked_at"`
}

// HabitWithCheckin joins a habit with its most recent check-in timestamp.
type HabitWithCheckin struct {
	Habit
	LastCheckin *time.Time `db:"last_checkin" json:"last_checkin"`
}
