package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrPlaidItemNotFound = errors.New("plaid item not found")

type FinanceRepository interface {
	CreateItem(item *model.PlaidItem) error
	ItemByPlaidID(plaidItemID string) (*model.PlaidItem, error)
	ItemsByUser(userID string) ([]*model.PlaidItem, error)
	UpdateItemStatus(id, status string) error
	UpdateItemCursor(id, cursor string) error

	UpsertAccount(account *model.Account) error
	AccountsByUser(userID string) ([]*model.Account, error)

	UpsertTransaction(tx *model.Transaction) error
	DeleteTransaction(transactionID string) error
	TransactionsByUser(userID string, limit int) ([]*model.Transaction, error)
}

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) CreateItem(item *model.PlaidItem) error {
	query := `INSERT INTO plaid_items (id, user_id, item_id, access_token, status, sync_cursor, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(query,
		item.ID,
		item.UserID,
		item.ItemID,
		item.AccessToken,
		item.Status,
		item.SyncCursor,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (r *financeRepository) ItemByPlaidID(plaidItemID string) (*model.PlaidItem, error) {
	item := &model.PlaidItem{}
	query := `SELECT * FROM plaid_items WHERE item_id = $1`

	err := r.db.Get(item, query, plaidItemID)
	if err == sql.ErrNoRows {
		return nil, ErrPlaidItemNotFound
	}

	return item, err
}

func (r *financeRepository) ItemsByUser(userID string) ([]*model.PlaidItem, error) {
	var items []*model.PlaidItem
	query := `SELECT * FROM plaid_items WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&items, query, userID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *financeRepository) UpdateItemStatus(id, status string) error {
	query := `UPDATE plaid_items SET status = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(query, status, time.Now(), id)
	return err
}

func (r *financeRepository) UpdateItemCursor(id, cursor string) error {
	query := `UPDATE plaid_items SET sync_cursor = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.Exec(query, cursor, time.Now(), id)
	return err
}

func (r *financeRepository) UpsertAccount(account *model.Account) error {
	query := `INSERT INTO accounts (id, item_id, account_id, name, mask, type, subtype, current_balance, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (account_id) DO UPDATE SET name = excluded.name, current_balance = excluded.current_balance`

	_, err := r.db.Exec(query,
		account.ID,
		account.ItemID,
		account.AccountID,
		account.Name,
		account.Mask,
		account.Type,
		account.Subtype,
		account.CurrentBalance,
		account.CreatedAt,
	)

	return err
}

func (r *financeRepository) AccountsByUser(userID string) ([]*model.Account, error) {
	var accounts []*model.Account
	query := `SELECT a.* FROM accounts a
	          JOIN plaid_items i ON a.item_id = i.id
	          WHERE i.user_id = $1
	          ORDER BY a.name ASC`

	err := r.db.Select(&accounts, query, userID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (r *financeRepository) UpsertTransaction(tx *model.Transaction) error {
	query := `INSERT INTO transactions (id, account_id, transaction_id, name, merchant_name, amount, date, pending, category, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          ON CONFLICT (transaction_id) DO UPDATE SET
	            name = excluded.name,
	            merchant_name = excluded.merchant_name,
	            amount = excluded.amount,
	            date = excluded.date,
	            pending = excluded.pending,
	            category = excluded.category`

	_, err := r.db.Exec(query,
		tx.ID,
		tx.AccountID,
		tx.TransactionID,
		tx.Name,
		tx.MerchantName,
		tx.Amount,
		tx.Date,
		tx.Pending,
		tx.Category,
		tx.CreatedAt,
	)

	return err
}

func (r *financeRepository) DeleteTransaction(transactionID string) error {
	_, err := r.db.Exec(`DELETE FROM transactions WHERE transaction_id = $1`, transactionID)
	return err
}

func (r *financeRepository) TransactionsByUser(userID string, limit int) ([]*model.Transaction, error) {
	var transactions []*model.Transaction
	query := `SELECT t.* FROM transactions t
	          JOIN accounts a ON t.account_id = a.account_id
	          JOIN plaid_items i ON a.item_id = i.id
	          WHERE i.user_id = $1
	          ORDER BY t.date DESC
	          LIMIT $2`

	err := r.db.Select(&transactions, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
