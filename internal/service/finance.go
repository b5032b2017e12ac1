package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
	"github.com/plaid/plaid-go/v20/plaid"
)

type FinanceService struct {
	repo    repository.FinanceRepository
	client  *plaid.APIClient
	appName string
}

func NewFinanceService(repo repository.FinanceRepository, clientID, secret, environment, appName string) *FinanceService {
	cfg := plaid.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	cfg.AddDefaultHeader("PLAID-SECRET", secret)
	cfg.UseEnvironment(plaidEnvironment(environment))

	return &FinanceService{
		repo:    repo,
		client:  plaid.NewAPIClient(cfg),
		appName: appName,
	}
}

func plaidEnvironment(name string) plaid.Environment {
	if strings.EqualFold(name, "production") {
		return plaid.Production
	}
	return plaid.Sandbox
}

// LinkToken creates a short-lived token the client uses to open the provider's
// account-linking flow.
func (s *FinanceService) LinkToken(ctx context.Context, userID string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{ClientUserId: userID}
	request := plaid.NewLinkTokenCreateRequest(s.appName, "en", []plaid.CountryCode{plaid.COUNTRYCODE_US}, user)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := s.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create link token: %w", err)
	}

	return resp.GetLinkToken(), nil
}

// ExchangePublicToken swaps the public token for an access token, stores the
// new item and pulls its accounts.
func (s *FinanceService) ExchangePublicToken(ctx context.Context, userID, publicToken string) (*model.PlaidItem, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)

	resp, _, err := s.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to exchange public token: %w", err)
	}

	now := time.Now()
	item := &model.PlaidItem{
		ID:          uuid.New().String(),
		UserID:      userID,
		ItemID:      resp.GetItemId(),
		AccessToken: resp.GetAccessToken(),
		Status:      model.PlaidItemStatusGood,
		SyncCursor:  "",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.repo.CreateItem(item)
	if err != nil {
		return nil, fmt.Errorf("failed to store item: %w", err)
	}

	err = s.syncAccounts(ctx, item)
	if err != nil {
		// Accounts refresh again on the next webhook; the link itself stands
		slog.Warn("initial account sync failed", "error", err, "item_id", item.ItemID)
	}

	return item, nil
}

func (s *FinanceService) syncAccounts(ctx context.Context, item *model.PlaidItem) error {
	request := plaid.NewAccountsGetRequest(item.AccessToken)

	resp, _, err := s.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, account := range resp.GetAccounts() {
		balances := account.GetBalances()
		record := &model.Account{
			ID:             uuid.New().String(),
			ItemID:         item.ID,
			AccountID:      account.GetAccountId(),
			Name:           account.GetName(),
			Mask:           account.GetMask(),
			Type:           string(account.GetType()),
			Subtype:        string(account.GetSubtype()),
			CurrentBalance: balances.GetCurrent(),
			CreatedAt:      time.Now(),
		}

		err = s.repo.UpsertAccount(record)
		if err != nil {
			return fmt.Errorf("failed to upsert account: %w", err)
		}
	}

	return nil
}

// HandleWebhook dispatches a provider webhook to the matching routine.
// Unknown webhook types are logged and acknowledged, never failed.
func (s *FinanceService) HandleWebhook(ctx context.Context, webhookType, webhookCode, plaidItemID string) error {
	switch webhookType {
	case "TRANSACTIONS":
		switch webhookCode {
		case "SYNC_UPDATES_AVAILABLE", "INITIAL_UPDATE", "HISTORICAL_UPDATE", "DEFAULT_UPDATE":
			return s.SyncTransactions(ctx, plaidItemID)
		}
	case "ITEM":
		switch webhookCode {
		case "ERROR":
			return s.updateItemStatus(plaidItemID, model.PlaidItemStatusError)
		case "PENDING_EXPIRATION", "LOGIN_REPAIRED":
			return s.updateItemStatus(plaidItemID, model.PlaidItemStatusLoginRequired)
		}
	}

	slog.Info("ignoring webhook", "type", webhookType, "code", webhookCode, "item_id", plaidItemID)
	return nil
}

func (s *FinanceService) updateItemStatus(plaidItemID, status string) error {
	item, err := s.repo.ItemByPlaidID(plaidItemID)
	if err != nil {
		return err
	}

	return s.repo.UpdateItemStatus(item.ID, status)
}

// SyncTransactions pulls transaction deltas for the item using the provider's
// cursor protocol, upserting added/modified rows and deleting removed ones.
// The cursor only advances after each page is fully applied.
func (s *FinanceService) SyncTransactions(ctx context.Context, plaidItemID string) error {
	item, err := s.repo.ItemByPlaidID(plaidItemID)
	if err != nil {
		return err
	}

	cursor := item.SyncCursor
	hasMore := true

	for hasMore {
		request := plaid.NewTransactionsSyncRequest(item.AccessToken)
		if cursor != "" {
			request.SetCursor(cursor)
		}

		resp, _, err := s.client.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(*request).Execute()
		if err != nil {
			return fmt.Errorf("failed to sync transactions: %w", err)
		}

		for _, tx := range resp.GetAdded() {
			err = s.repo.UpsertTransaction(toTransaction(tx))
			if err != nil {
				return fmt.Errorf("failed to upsert transaction: %w", err)
			}
		}
		for _, tx := range resp.GetModified() {
			err = s.repo.UpsertTransaction(toTransaction(tx))
			if err != nil {
				return fmt.Errorf("failed to upsert transaction: %w", err)
			}
		}
		for _, removed := range resp.GetRemoved() {
			err = s.repo.DeleteTransaction(removed.GetTransactionId())
			if err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
		}

		cursor = resp.GetNextCursor()
		hasMore = resp.GetHasMore()

		err = s.repo.UpdateItemCursor(item.ID, cursor)
		if err != nil {
			return fmt.Errorf("failed to store sync cursor: %w", err)
		}
	}

	return nil
}

func toTransaction(tx plaid.Transaction) *model.Transaction {
	record := &model.Transaction{
		ID:            uuid.New().String(),
		AccountID:     tx.GetAccountId(),
		TransactionID: tx.GetTransactionId(),
		Name:          tx.GetName(),
		Amount:        tx.GetAmount(),
		Date:          tx.GetDate(),
		Pending:       tx.GetPending(),
		CreatedAt:     time.Now(),
	}

	if merchant := tx.GetMerchantName(); merchant != "" {
		record.MerchantName = &merchant
	}
	if categories := tx.GetCategory(); len(categories) > 0 {
		joined := strings.Join(categories, ", ")
		record.Category = &joined
	}

	return record
}

func (s *FinanceService) Accounts(userID string) ([]*model.Account, error) {
	return s.repo.AccountsByUser(userID)
}

func (s *FinanceService) Transactions(userID string, limit int) ([]*model.Transaction, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	return s.repo.TransactionsByUser(userID, limit)
}
