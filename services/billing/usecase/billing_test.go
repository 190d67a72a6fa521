package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/piresc/dispatch/services/billing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettle(t *testing.T) {
	settlement := &models.Settlement{TripID: "trip-1", RiderID: "rider-1", DriverID: "driver-1", Amount: 25000}

	tests := []struct {
		name      string
		input     *models.Settlement
		mockSetup func(*mocks.MockBillingRepo)
		wantErr   error
		wantLen   int
	}{
		{
			name:  "settled",
			input: settlement,
			mockSetup: func(repo *mocks.MockBillingRepo) {
				repo.EXPECT().Settle(gomock.Any(), settlement).Return([]*models.LedgerEntry{
					{UserID: "rider-1", Kind: models.LedgerDebit, Amount: 25000},
					{UserID: "driver-1", Kind: models.LedgerCredit, Amount: 25000},
				}, nil)
			},
			wantLen: 2,
		},
		{
			name:  "insufficient balance",
			input: settlement,
			mockSetup: func(repo *mocks.MockBillingRepo) {
				repo.EXPECT().Settle(gomock.Any(), settlement).Return(nil, models.ErrInsufficientBalance)
			},
			wantErr: models.ErrInsufficientBalance,
		},
		{
			name:      "zero amount",
			input:     &models.Settlement{RiderID: "rider-1", DriverID: "driver-1"},
			mockSetup: func(*mocks.MockBillingRepo) {},
			wantErr:   models.ErrInvalidRequest,
		},
		{
			name:      "same party",
			input:     &models.Settlement{RiderID: "user-1", DriverID: "user-1", Amount: 10},
			mockSetup: func(*mocks.MockBillingRepo) {},
			wantErr:   models.ErrInvalidRequest,
		},
		{
			name:      "missing driver",
			input:     &models.Settlement{RiderID: "rider-1", Amount: 10},
			mockSetup: func(*mocks.MockBillingRepo) {},
			wantErr:   models.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockBillingRepo(ctrl)
			tt.mockSetup(repo)
			uc := NewBillingUC(repo)

			// Act
			entries, err := uc.Settle(context.Background(), tt.input)

			// Assert
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entries)
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.wantLen)
		})
	}
}

func TestSettle_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBillingRepo(ctrl)
	repo.EXPECT().Settle(gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock detected"))

	_, err := NewBillingUC(repo).Settle(context.Background(),
		&models.Settlement{RiderID: "rider-1", DriverID: "driver-1", Amount: 10})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to settle")
}

func TestTopUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBillingRepo(ctrl)
	uc := NewBillingUC(repo)

	repo.EXPECT().TopUp(gomock.Any(), "rider-1", 50000.0).Return(&models.Wallet{UserID: "rider-1", Balance: 50000}, nil)

	wallet, err := uc.TopUp(context.Background(), "rider-1", 50000)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, wallet.Balance)

	_, err = uc.TopUp(context.Background(), "rider-1", -5)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
}

func TestListEntries_DefaultLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBillingRepo(ctrl)
	uc := NewBillingUC(repo)

	repo.EXPECT().ListEntries(gomock.Any(), "rider-1", DefaultEntryLimit).Return([]*models.LedgerEntry{}, nil).Times(2)

	_, err := uc.ListEntries(context.Background(), "rider-1", 0)
	require.NoError(t, err)
	_, err = uc.ListEntries(context.Background(), "rider-1", 1000)
	require.NoError(t, err)
}

func TestGetWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBillingRepo(ctrl)
	repo.EXPECT().GetWallet(gomock.Any(), "ghost").Return(nil, models.ErrWalletNotFound)

	_, err := NewBillingUC(repo).GetWallet(context.Background(), "ghost")

	assert.ErrorIs(t, err, models.ErrWalletNotFound)
}
