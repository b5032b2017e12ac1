package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/desperadoclub/desperado/internal/ctxkeys"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/desperadoclub/desperado/internal/service"
)

type FinanceHandler struct {
	financeService *service.FinanceService
}

func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// LinkToken creates a short-lived token for the bank linking flow.
func (h *FinanceHandler) LinkToken(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	token, err := h.financeService.LinkToken(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to create link token", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to create link token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"link_token": token})
}

// Exchange swaps a public token from the linking flow for a stored item and
// kicks off the first account sync.
func (h *FinanceHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		PublicToken string `json:"public_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PublicToken == "" {
		respondError(w, http.StatusBadRequest, "public_token is required")
		return
	}

	item, err := h.financeService.ExchangePublicToken(r.Context(), user.ID, req.PublicToken)
	if err != nil {
		slog.Error("failed to exchange public token", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to link account")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// Webhook receives item and transaction notifications. Unknown item ids are
// acknowledged with 200 so the sender does not retry forever.
func (h *FinanceHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WebhookType string `json:"webhook_type"`
		WebhookCode string `json:"webhook_code"`
		ItemID      string `json:"item_id"`
	}
	err := decodeJSONLenient(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.financeService.HandleWebhook(r.Context(), req.WebhookType, req.WebhookCode, req.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaidItemNotFound) {
			slog.Warn("webhook for unknown item", "item_id", req.ItemID)
			respondJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
			return
		}
		slog.Error("failed to handle webhook", "error", err, "type", req.WebhookType, "code", req.WebhookCode)
		respondError(w, http.StatusInternalServerError, "webhook handling failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *FinanceHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	accounts, err := h.financeService.Accounts(user.ID)
	if err != nil {
		slog.Error("failed to list accounts", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load accounts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

func (h *FinanceHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	transactions, err := h.financeService.Transactions(user.ID, limit)
	if err != nil {
		slog.Error("failed to list transactions", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load transactions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"transactions": transactions})
}
