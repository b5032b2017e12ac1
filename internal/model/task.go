package model

import (
	"time"
)

type Task struct {
	ID          string     `db:"id" json:"id"`
	HouseholdID string     `db:"household_id" json:"household_id"`
	Title       string     `db:"title" json:"title"`
	Notes       string     `db:"notes" json:"notes"`
	AssignedTo  *string    `db:"assigned_to" json:"assigned_to"`
	Completed   bool       `db:"completed" json:"completed"`
	DueDate     *time.Time `db:"due_date" json:"due_date"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
