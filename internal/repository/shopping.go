package repository

import (
	"database/sql"
	"errors"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrShoppingListNotFound = errors.New("shopping list not found")
	ErrShoppingItemNotFound = errors.New("shopping item not found")
)

type ShoppingRepository interface {
	CreateList(list *model.ShoppingList) error
	ListByID(householdID, listID string) (*model.ShoppingList, error)
	Lists(householdID string) ([]*model.ShoppingList, error)
	DeleteList(householdID, listID string) error

	CreateItem(item *model.ShoppingItem) error
	Items(listID string) ([]*model.ShoppingItem, error)
	SetItemChecked(itemID string, checked bool) error
	DeleteItem(itemID string) error
}

type shoppingRepository struct {
	db *sqlx.DB
}

func NewShoppingRepository(db *sqlx.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateList(list *model.ShoppingList) error {
	query := `INSERT INTO shopping_lists (id, household_id, name, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, list.ID, list.HouseholdID, list.Name, list.CreatedBy, list.CreatedAt)
	return err
}

func (r *shoppingRepository) ListByID(householdID, listID string) (*model.ShoppingList, error) {
	list := &model.ShoppingList{}
	query := `SELECT * FROM shopping_lists WHERE id = $1 AND household_id = $2`

	err := r.db.Get(list, query, listID, householdID)
	if err == sql.ErrNoRows {
		return nil, ErrShoppingListNotFound
	}

	return list, err
}

func (r *shoppingRepository) Lists(householdID string) ([]*model.ShoppingList, error) {
	var lists []*model.ShoppingList
	query := `SELECT * FROM shopping_lists WHERE household_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&lists, query, householdID)
	if err != nil {
		return nil, err
	}

	return lists, nil
}

func (r *shoppingRepository) DeleteList(householdID, listID string) error {
	result, err := r.db.Exec(`DELETE FROM shopping_lists WHERE id = $1 AND household_id = $2`, listID, householdID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrShoppingListNotFound
	}

	return nil
}

func (r *shoppingRepository) CreateItem(item *model.ShoppingItem) error {
	query := `INSERT INTO shopping_items (id, list_id, name, quantity, checked, added_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query, item.ID, item.ListID, item.Name, item.Quantity, item.Checked, item.AddedBy, item.CreatedAt)
	return err
}

func (r *shoppingRepository) Items(listID string) ([]*model.ShoppingItem, error) {
	var items []*model.ShoppingItem
	query := `SELECT * FROM shopping_items WHERE list_id = $1 ORDER BY created_at ASC`

	err := r.db.Select(&items, query, listID)
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *shoppingRepository) SetItemChecked(itemID string, checked bool) error {
	result, err := r.db.Exec(`UPDATE shopping_items SET checked = $1 WHERE id = $2`, checked, itemID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrShoppingItemNotFound
	}

	return nil
}

func (r *shoppingRepository) DeleteItem(itemID string) error {
	result, err := r.db.Exec(`DELETE FROM shopping_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrShoppingItemNotFound
	}

	return nil
}
