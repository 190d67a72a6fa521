package models

import "errors"

// Validation
var (
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidScoringConfig = errors.New("scoring weights must be non-negative and sum to 1")
)

// Lookup
var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrOfferNotFound  = errors.New("offer not found")
	ErrWalletNotFound = errors.New("wallet not found")
)

// Race-lost outcomes. Callers branch on these; they are not incidents.
var (
	ErrTripUnavailable    = errors.New("trip no longer available")
	ErrOfferNoLongerValid = errors.New("offer no longer valid")
	ErrTripNotInProgress  = errors.New("trip not in progress")
)

// State machine
var (
	ErrInvalidTransition = errors.New("invalid trip transition")
	ErrForbidden         = errors.New("actor not allowed to perform this transition")
)

// Funds
var ErrInsufficientBalance = errors.New("insufficient balance")

// Delivery
var (
	ErrClientNotConnected = errors.New("client not connected")
	ErrDeliveryFailed     = errors.New("delivery failed")
)

// ErrGlobalBroadcastDisabled is returned by every system-wide broadcast attempt
var ErrGlobalBroadcastDisabled = errors.New("global broadcast is disabled; use a tile-scoped send")

// Roster
var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrDriverBusy     = errors.New("driver is on a trip")
)

// ErrDispatchInProgress is returned when a trip already has a running dispatch
var ErrDispatchInProgress = errors.New("dispatch already in progress")
