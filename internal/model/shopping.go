package model

import (
	"time"
)

type ShoppingList struct {
	ID          string    `db:"id" json:"id"`
	HouseholdID string    `db:"household_id" json:"household_id"`
	Name        string    `db:"name" json:"name"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ShoppingItem struct {
	ID        string    `db:"id" json:"id"`
	ListID    string    `db:"list_id" json:"list_id"`
	Name      string    `db:"name" json:"name"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Checked   bool      `db:"checked" json:"checked"`
	AddedBy   string    `db:"added_by" json:"added_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
