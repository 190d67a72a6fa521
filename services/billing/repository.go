package billing

import (
	"context"

	"github.com/piresc/dispatch/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/dispatch/services/billing BillingRepo

// BillingRepo defines the interface for wallet and ledger storage
type BillingRepo interface {
	Settle(ctx context.Context, settlement *models.Settlement) ([]*models.LedgerEntry, error)
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	TopUp(ctx context.Context, userID string, amount float64) (*models.Wallet, error)
	ListEntries(ctx context.Context, userID string, limit int) ([]*models.LedgerEntry, error)
}
