package models

import "time"

// LedgerEntryKind is the direction of a ledger movement
type LedgerEntryKind string

const (
	LedgerDebit  LedgerEntryKind = "DEBIT"
	LedgerCredit LedgerEntryKind = "CREDIT"
	LedgerTopUp  LedgerEntryKind = "TOPUP"
)

// Settlement moves the fare of a trip from rider to driver
type Settlement struct {
	TripID   string  `json:"trip_id"`
	RiderID  string  `json:"rider_id"`
	DriverID string  `json:"driver_id"`
	Amount   float64 `json:"amount"`
}

// Wallet is a user's spendable balance
type Wallet struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Balance   float64   `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LedgerEntry records one balance movement
type LedgerEntry struct {
	ID        string          `json:"id" db:"id"`
	TripID    *string         `json:"trip_id,omitempty" db:"trip_id"`
	UserID    string          `json:"user_id" db:"user_id"`
	Kind      LedgerEntryKind `json:"kind" db:"kind"`
	Amount    float64         `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
