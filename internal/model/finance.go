package model

import (
	"time"
)

const (
	PlaidItemStatusGood          = "good"
	PlaidItemStatusError         = "error"
	PlaidItemStatusLoginRequired = "login_required"
)

// PlaidItem is a linked banking connection. AccessToken never leaves the server.
type PlaidItem struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	ItemID      string    `db:"item_id" json:"item_id"`
	AccessToken string    `db:"access_token" json:"-"`
	Status      string    `db:"status" json:"status"`
	SyncCursor  string    `db:"sync_cursor" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type Account struct {
	ID             string    `db:"id" json:"id"`
	ItemID         string    `db:"item_id" json:"item_id"`
	AccountID      string    `db:"account_id" json:"account_id"`
	Name           string    `db:"name" json:"name"`
	Mask           string    `db:"mask" json:"mask"`
	Type           string    `db:"type" json:"type"`
	Subtype        string    `db:"subtype" json:"subtype"`
	CurrentBalance float64   `db:"current_balance" json:"current_balance"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Transaction struct {
	ID            string    `db:"id" json:"id"`
	AccountID     string    `db:"account_id" json:"account_id"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	Name          string    `db:"name" json:"name"`
	MerchantName  *string   `db:"merchant_name" json:"merchant_name"`
	Amount        float64   `db:"amount" json:"amount"`
	Date          string    `db:"date" json:"date"`
	Pending       bool      `db:"pending" json:"pending"`
	Category      *string   `db:"category" json:"category"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
