package service

import (
	"fmt"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

type ShoppingService struct {
	repo repository.ShoppingRepository
}

func NewShoppingService(repo repository.ShoppingRepository) *ShoppingService {
	return &ShoppingService{repo: repo}
}

func (s *ShoppingService) CreateList(householdID, userID, name string) (*model.ShoppingList, error) {
	list := &model.ShoppingList{
		ID:          uuid.New().String(),
		HouseholdID: householdID,
		Name:        name,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}

	err := s.repo.CreateList(list)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	return list, nil
}

func (s *ShoppingService) Lists(householdID string) ([]*model.ShoppingList, error) {
	return s.repo.Lists(householdID)
}

func (s *ShoppingService) DeleteList(householdID, listID string) error {
	return s.repo.DeleteList(householdID, listID)
}

func (s *ShoppingService) AddItem(householdID, listID, userID, name string, quantity int) (*model.ShoppingItem, error) {
	// Ownership check keeps one household from writing into another's list
	_, err := s.repo.ListByID(householdID, listID)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	item := &model.ShoppingItem{
		ID:        uuid.New().String(),
		ListID:    listID,
		Name:      name,
		Quantity:  quantity,
		Checked:   false,
		AddedBy:   userID,
		CreatedAt: time.Now(),
	}

	err = s.repo.CreateItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) Items(householdID, listID string) ([]*model.ShoppingItem, error) {
	_, err := s.repo.ListByID(householdID, listID)
	if err != nil {
		return nil, err
	}

	return s.repo.Items(listID)
}

func (s *ShoppingService) SetItemChecked(itemID string, checked bool) error {
	return s.repo.SetItemChecked(itemID, checked)
}

func (s *ShoppingService) DeleteItem(itemID string) error {
	return s.repo.DeleteItem(itemID)
}
