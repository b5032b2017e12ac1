package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type ShoppingHandler struct {
	shoppingService *service.ShoppingService
}

func NewShoppingHandler(shoppingService *service.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
	}
}

func (h *ShoppingHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	membership := ctxkeys.Membership(r.Context())

	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	list, err := h.shoppingService.CreateList(membership.HouseholdID, user.ID, req.Name)
	if err != nil {
		slog.Error("failed to create shopping list", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	respondJSON(w, http.StatusCreated, list)
}

func (h *ShoppingHandler) Lists(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())

	lists, err := h.shoppingService.Lists(membership.HouseholdID)
	if err != nil {
		slog.Error("failed to list shopping lists", "error", err, "household_id", membership.HouseholdID)
		respondError(w, http.StatusInternalServerError, "failed to load lists")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"lists": lists})
}

func (h *ShoppingHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())
	listID := r.PathValue("id")

	err := h.shoppingService.DeleteList(membership.HouseholdID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrShoppingListNotFound) {
			respondError(w, http.StatusNotFound, "list not found")
			return
		}
		slog.Error("failed to delete shopping list", "error", err, "list_id", listID)
		respondError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ShoppingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	membership := ctxkeys.Membership(r.Context())
	listID := r.PathValue("id")

	var req struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	item, err := h.shoppingService.AddItem(membership.HouseholdID, listID, user.ID, req.Name, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrShoppingListNotFound) {
			respondError(w, http.StatusNotFound, "list not found")
			return
		}
		slog.Error("failed to add shopping item", "error", err, "list_id", listID)
		respondError(w, http.StatusInternalServerError, "failed to add item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) Items(w http.ResponseWriter, r *http.Request) {
	membership := ctxkeys.Membership(r.Context())
	listID := r.PathValue("id")

	items, err := h.shoppingService.Items(membership.HouseholdID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrShoppingListNotFound) {
			respondError(w, http.StatusNotFound, "list not found")
			return
		}
		slog.Error("failed to list shopping items", "error", err, "list_id", listID)
		respondError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *ShoppingHandler) CheckItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemID")

	var req struct {
		Checked bool `json:"checked"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.shoppingService.SetItemChecked(itemID, req.Checked)
	if err != nil {
		if errors.Is(err, repository.ErrShoppingItemNotFound) {
			respondError(w, http.StatusNotFound, "item not found")
			return
		}
		slog.Error("failed to check shopping item", "error", err, "item_id", itemID)
		respondError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"checked": req.Checked})
}

func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("itemID")

	err := h.shoppingService.DeleteItem(itemID)
	if err != nil {
		if errors.Is(err, repository.ErrShoppingItemNotFound) {
			respondError(w, http.StatusNotFound, "item not found")
			return
		}
		slog.Error("failed to delete shopping item", "error", err, "item_id", itemID)
		respondError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
