package database

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/dispatch/internal/pkg/models"
)

// MemoryStore keeps trips, offers, wallets and the driver roster in process.
// It satisfies every repository interface with the same compare-and-set
// semantics as the Postgres and Redis repositories: one mutex stands in for
// the row locks. Values are copied in and out so callers never share state.
type MemoryStore struct {
	mu sync.Mutex

	trips   map[string]*models.Trip
	offers  map[string]*models.Offer
	drivers map[string]*models.DriverProfile
	wallets map[string]*models.Wallet
	entries []*models.LedgerEntry

	positions    map[string]memPosition
	availability map[string]models.DriverAvailability

	now func() time.Time
}

type memPosition struct {
	record    models.DriverLocationRecord
	expiresAt time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		trips:        make(map[string]*models.Trip),
		offers:       make(map[string]*models.Offer),
		drivers:      make(map[string]*models.DriverProfile),
		wallets:      make(map[string]*models.Wallet),
		positions:    make(map[string]memPosition),
		availability: make(map[string]models.DriverAvailability),
		now:          models.Now,
	}
}

// SetClock replaces the clock used for position expiry
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func copyTrip(t *models.Trip) *models.Trip {
	c := *t
	if t.DriverID != nil {
		driverID := *t.DriverID
		c.DriverID = &driverID
	}
	return &c
}

func copyOffer(o *models.Offer) *models.Offer {
	c := *o
	return &c
}

// Roster

// StoreDriverLocation records the position until ttl passes
func (s *MemoryStore) StoreDriverLocation(_ context.Context, record *models.DriverLocationRecord, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[record.DriverID] = memPosition{record: *record, expiresAt: s.now().Add(ttl)}
	return nil
}

// RemoveDriverLocation forgets a driver's position
func (s *MemoryStore) RemoveDriverLocation(_ context.Context, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, driverID)
	return nil
}

// GetDriverAvailability returns "" when no status is set
func (s *MemoryStore) GetDriverAvailability(_ context.Context, driverID string) (models.DriverAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availability[driverID], nil
}

// SetDriverAvailability stores the driver's status
func (s *MemoryStore) SetDriverAvailability(_ context.Context, driverID string, availability models.DriverAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.availability[driverID] = availability
	return nil
}

// JoinRoster marks the driver ONLINE unless it already has a status
func (s *MemoryStore) JoinRoster(_ context.Context, driverID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.availability[driverID]; ok {
		return false, nil
	}
	s.availability[driverID] = models.DriverOnline
	return true, nil
}

// ClearDriverAvailability forgets the driver's status
func (s *MemoryStore) ClearDriverAvailability(_ context.Context, driverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.availability, driverID)
	return nil
}

// FindOnlineDrivers returns ONLINE drivers with an unexpired position in bbox
func (s *MemoryStore) FindOnlineDrivers(_ context.Context, bbox models.BoundingBox) ([]*models.DriverLocationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	records := make([]*models.DriverLocationRecord, 0)
	for driverID, pos := range s.positions {
		if !now.Before(pos.expiresAt) {
			delete(s.positions, driverID)
			continue
		}
		if s.availability[driverID] != models.DriverOnline || !bbox.Contains(pos.record.Location) {
			continue
		}
		record := pos.record
		records = append(records, &record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].DriverID < records[j].DriverID })
	return records, nil
}

// Driver profiles

// GetDriverProfiles loads the profiles that exist among driverIDs
func (s *MemoryStore) GetDriverProfiles(_ context.Context, driverIDs []string) (map[string]*models.DriverProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make(map[string]*models.DriverProfile, len(driverIDs))
	for _, id := range driverIDs {
		if p, ok := s.drivers[id]; ok {
			c := *p
			profiles[id] = &c
		}
	}
	return profiles, nil
}

// GetDriverProfile loads a single profile
func (s *MemoryStore) GetDriverProfile(_ context.Context, driverID string) (*models.DriverProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.drivers[driverID]
	if !ok {
		return nil, fmt.Errorf("driver %s: %w", driverID, models.ErrDriverNotFound)
	}
	c := *p
	return &c, nil
}

// UpsertDriverProfile sets rating and service type, keeping offer counters
func (s *MemoryStore) UpsertDriverProfile(_ context.Context, profile *models.DriverProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.driver(profile.DriverID, profile.UpdatedAt)
	p.Rating = profile.Rating
	p.ServiceType = profile.ServiceType
	return nil
}

// driver returns the profile row, creating it with column defaults
func (s *MemoryStore) driver(driverID string, at time.Time) *models.DriverProfile {
	p, ok := s.drivers[driverID]
	if !ok {
		p = &models.DriverProfile{DriverID: driverID, ServiceType: models.ServiceBike}
		s.drivers[driverID] = p
	}
	p.UpdatedAt = at
	return p
}

// Trips

// CreateTrip inserts a new trip
func (s *MemoryStore) CreateTrip(_ context.Context, trip *models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trips[trip.ID]; ok {
		return fmt.Errorf("failed to create trip: trip %s already exists", trip.ID)
	}
	s.trips[trip.ID] = copyTrip(trip)
	return nil
}

// GetTrip returns a trip by ID
func (s *MemoryStore) GetTrip(_ context.Context, tripID string) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return nil, err
	}
	return copyTrip(trip), nil
}

func (s *MemoryStore) trip(tripID string) (*models.Trip, error) {
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, models.ErrTripNotFound)
	}
	return trip, nil
}

func statusIn(status models.TripStatus, from []models.TripStatus) bool {
	for _, f := range from {
		if status == f {
			return true
		}
	}
	return false
}

// TransitionTrip moves a trip to status to when it is currently in from
func (s *MemoryStore) TransitionTrip(_ context.Context, tripID string, from []models.TripStatus, to models.TripStatus, at time.Time) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return nil, err
	}
	if !statusIn(trip.Status, from) {
		return nil, fmt.Errorf("trip %s is %s, cannot move to %s: %w", tripID, trip.Status, to, models.ErrInvalidTransition)
	}

	stamp := at
	switch to {
	case models.TripStatusAccepted:
		trip.AcceptedAt = &stamp
	case models.TripStatusArrived:
		trip.ArrivedAt = &stamp
	case models.TripStatusInProgress:
		trip.StartedAt = &stamp
	case models.TripStatusCompleted:
		trip.CompletedAt = &stamp
	case models.TripStatusCancelled:
		trip.CancelledAt = &stamp
	default:
		return nil, fmt.Errorf("%w: no transition into %s", models.ErrInvalidTransition, to)
	}
	trip.Status = to
	trip.UpdatedAt = at
	return copyTrip(trip), nil
}

// CancelTrip cancels the trip and its open offers together
func (s *MemoryStore) CancelTrip(_ context.Context, tripID string, from []models.TripStatus, reason string, at time.Time) (*models.CancelResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return nil, err
	}
	if !statusIn(trip.Status, from) {
		return nil, fmt.Errorf("trip %s is %s, cannot move to %s: %w", tripID, trip.Status, models.TripStatusCancelled, models.ErrInvalidTransition)
	}

	previous := trip.Status
	stamp := at
	trip.Status = models.TripStatusCancelled
	trip.CancelReason = reason
	trip.CancelledAt = &stamp
	trip.UpdatedAt = at

	var cancelled []*models.Offer
	for _, o := range s.tripOffers(tripID) {
		if !o.Status.Open() {
			continue
		}
		o.Status = models.OfferStatusCancelled
		o.Reason = models.OfferReasonTripCancelled
		o.RespondedAt = &stamp
		cancelled = append(cancelled, copyOffer(o))
	}
	return &models.CancelResult{Trip: copyTrip(trip), From: previous, Cancelled: cancelled}, nil
}

// CompleteTrip completes an IN_PROGRESS trip and settles its fare. Neither
// happens when the rider cannot pay.
func (s *MemoryStore) CompleteTrip(_ context.Context, tripID string, at time.Time) (*models.Trip, []*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return nil, nil, err
	}
	if trip.Status != models.TripStatusInProgress {
		return nil, nil, fmt.Errorf("trip %s is %s, cannot move to %s: %w", tripID, trip.Status, models.TripStatusCompleted, models.ErrTripNotInProgress)
	}

	entries, err := s.settle(&models.Settlement{
		TripID:   trip.ID,
		RiderID:  trip.RiderID,
		DriverID: trip.AssignedDriver(),
		Amount:   trip.Fare,
	}, at)
	if err != nil {
		return nil, nil, err
	}

	stamp := at
	trip.Status = models.TripStatusCompleted
	trip.CompletedAt = &stamp
	trip.UpdatedAt = at
	return copyTrip(trip), entries, nil
}

// Offers

// tripOffers returns the trip's offers ordered by round and rank
func (s *MemoryStore) tripOffers(tripID string) []*models.Offer {
	var offers []*models.Offer
	for _, o := range s.offers {
		if o.TripID == tripID {
			offers = append(offers, o)
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].Round != offers[j].Round {
			return offers[i].Round < offers[j].Round
		}
		return offers[i].Rank < offers[j].Rank
	})
	return offers
}

// CreateOffers inserts one round of offers
func (s *MemoryStore) CreateOffers(_ context.Context, offers []*models.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range offers {
		if _, ok := s.offers[o.ID]; ok {
			return fmt.Errorf("failed to insert offer %s: already exists", o.ID)
		}
	}
	for _, o := range offers {
		s.offers[o.ID] = copyOffer(o)
	}
	return nil
}

// MarkOfferSent records delivery and counts it against the driver
func (s *MemoryStore) MarkOfferSent(_ context.Context, offerID, driverID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[offerID]
	if !ok {
		return fmt.Errorf("offer %s: %w", offerID, models.ErrOfferNotFound)
	}
	stamp := sentAt
	o.SentAt = &stamp
	if o.Status == models.OfferStatusPending {
		o.Status = models.OfferStatusSent
	}
	s.driver(driverID, sentAt).OffersReceived++
	return nil
}

// MarkOfferCancelled closes an offer that is still open
func (s *MemoryStore) MarkOfferCancelled(_ context.Context, offerID string, reason models.OfferReason, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[offerID]
	if !ok || !o.Status.Open() {
		return nil
	}
	stamp := at
	o.Status = models.OfferStatusCancelled
	o.Reason = reason
	o.RespondedAt = &stamp
	return nil
}

// GetOffer returns an offer by ID
func (s *MemoryStore) GetOffer(_ context.Context, offerID string) (*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[offerID]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", offerID, models.ErrOfferNotFound)
	}
	return copyOffer(o), nil
}

// ListOffersByTrip returns every offer of a trip by round and rank
func (s *MemoryStore) ListOffersByTrip(_ context.Context, tripID string) ([]*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	offers := make([]*models.Offer, 0)
	for _, o := range s.tripOffers(tripID) {
		offers = append(offers, copyOffer(o))
	}
	return offers, nil
}

// AcceptOffer resolves one accept. Of several concurrent accepts for one
// trip exactly one finds it REQUESTED.
func (s *MemoryStore) AcceptOffer(_ context.Context, offerID, driverID string, now time.Time) (*models.AcceptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[offerID]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", offerID, models.ErrOfferNotFound)
	}
	if o.DriverID != driverID {
		return nil, fmt.Errorf("offer %s belongs to another driver: %w", offerID, models.ErrForbidden)
	}
	trip, err := s.trip(o.TripID)
	if err != nil {
		return nil, err
	}

	stamp := now
	if !o.Status.Open() {
		if o.Status != models.OfferStatusCancelled {
			return nil, fmt.Errorf("offer %s is %s: %w", offerID, o.Status, models.ErrOfferNoLongerValid)
		}
		switch o.Reason {
		case models.OfferReasonSiblingAccepted:
			o.Reason = models.OfferReasonTripUnavailable
			o.RespondedAt = &stamp
			return nil, fmt.Errorf("trip %s: %w", o.TripID, models.ErrTripUnavailable)
		case models.OfferReasonTripCancelled, models.OfferReasonTripUnavailable:
			return nil, fmt.Errorf("trip %s: %w", o.TripID, models.ErrTripUnavailable)
		}
		return nil, fmt.Errorf("offer %s is %s: %w", offerID, o.Status, models.ErrOfferNoLongerValid)
	}
	if now.After(o.ExpiresAt) {
		o.Status = models.OfferStatusExpired
		o.Reason = models.OfferReasonExpired
		o.RespondedAt = &stamp
		return nil, fmt.Errorf("offer %s expired: %w", offerID, models.ErrOfferNoLongerValid)
	}
	if trip.Status != models.TripStatusRequested {
		o.Status = models.OfferStatusCancelled
		o.Reason = models.OfferReasonTripUnavailable
		o.RespondedAt = &stamp
		return nil, fmt.Errorf("trip %s: %w", o.TripID, models.ErrTripUnavailable)
	}

	assigned := driverID
	trip.Status = models.TripStatusAccepted
	trip.DriverID = &assigned
	trip.AcceptedAt = &stamp
	trip.UpdatedAt = now

	o.Status = models.OfferStatusAccepted
	o.RespondedAt = &stamp

	var cancelled []*models.Offer
	for _, sibling := range s.tripOffers(o.TripID) {
		if sibling.ID == offerID || !sibling.Status.Open() {
			continue
		}
		sibling.Status = models.OfferStatusCancelled
		sibling.Reason = models.OfferReasonSiblingAccepted
		cancelled = append(cancelled, copyOffer(sibling))
	}
	s.driver(driverID, now).OffersAccepted++

	return &models.AcceptResult{
		Offer:     copyOffer(o),
		Trip:      copyTrip(trip),
		Cancelled: cancelled,
	}, nil
}

// RejectOffer records a driver's refusal
func (s *MemoryStore) RejectOffer(_ context.Context, offerID, driverID string, now time.Time) (*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.offers[offerID]
	if !ok {
		return nil, fmt.Errorf("offer %s: %w", offerID, models.ErrOfferNotFound)
	}
	if o.DriverID != driverID {
		return nil, fmt.Errorf("offer %s belongs to another driver: %w", offerID, models.ErrForbidden)
	}
	if !o.Status.Open() {
		return nil, fmt.Errorf("offer %s is %s: %w", offerID, o.Status, models.ErrOfferNoLongerValid)
	}

	stamp := now
	o.RespondedAt = &stamp
	if now.After(o.ExpiresAt) {
		o.Status = models.OfferStatusExpired
		o.Reason = models.OfferReasonExpired
		return nil, fmt.Errorf("offer %s expired: %w", offerID, models.ErrOfferNoLongerValid)
	}
	o.Status = models.OfferStatusRejected
	return copyOffer(o), nil
}

// ExpireRoundOffers closes every still-open offer of one round
func (s *MemoryStore) ExpireRoundOffers(_ context.Context, tripID string, round int, now time.Time) ([]*models.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := now
	var expired []*models.Offer
	for _, o := range s.tripOffers(tripID) {
		if o.Round != round || !o.Status.Open() {
			continue
		}
		o.Status = models.OfferStatusExpired
		o.Reason = models.OfferReasonExpired
		o.RespondedAt = &stamp
		expired = append(expired, copyOffer(o))
	}
	return expired, nil
}

// Wallets

// Settle debits the rider and credits the driver, or changes nothing
func (s *MemoryStore) Settle(_ context.Context, settlement *models.Settlement) ([]*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settle(settlement, s.now())
}

func (s *MemoryStore) settle(st *models.Settlement, now time.Time) ([]*models.LedgerEntry, error) {
	rider, ok := s.wallets[st.RiderID]
	if !ok {
		return nil, fmt.Errorf("rider %s has no wallet: %w", st.RiderID, models.ErrInsufficientBalance)
	}
	if rider.Balance < st.Amount {
		return nil, fmt.Errorf("rider %s balance %.2f below %.2f: %w", st.RiderID, rider.Balance, st.Amount, models.ErrInsufficientBalance)
	}

	var tripID *string
	if st.TripID != "" {
		for _, e := range s.entries {
			if e.TripID != nil && *e.TripID == st.TripID && e.Kind == models.LedgerDebit {
				return nil, fmt.Errorf("failed to write DEBIT ledger entry: trip %s already settled", st.TripID)
			}
		}
		id := st.TripID
		tripID = &id
	}

	rider.Balance -= st.Amount
	rider.UpdatedAt = now
	driver := s.wallet(st.DriverID)
	driver.Balance += st.Amount
	driver.UpdatedAt = now

	entries := []*models.LedgerEntry{
		{ID: uuid.NewString(), TripID: tripID, UserID: st.RiderID, Kind: models.LedgerDebit, Amount: st.Amount, CreatedAt: now},
		{ID: uuid.NewString(), TripID: tripID, UserID: st.DriverID, Kind: models.LedgerCredit, Amount: st.Amount, CreatedAt: now},
	}
	for _, e := range entries {
		c := *e
		s.entries = append(s.entries, &c)
	}
	return entries, nil
}

func (s *MemoryStore) wallet(userID string) *models.Wallet {
	w, ok := s.wallets[userID]
	if !ok {
		w = &models.Wallet{UserID: userID}
		s.wallets[userID] = w
	}
	return w
}

// GetWallet returns a user's balance
func (s *MemoryStore) GetWallet(_ context.Context, userID string) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, models.ErrWalletNotFound)
	}
	c := *w
	return &c, nil
}

// TopUp adds amount to a wallet, creating it when missing
func (s *MemoryStore) TopUp(_ context.Context, userID string, amount float64) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := s.wallet(userID)
	w.Balance += amount
	w.UpdatedAt = now
	s.entries = append(s.entries, &models.LedgerEntry{
		ID: uuid.NewString(), UserID: userID, Kind: models.LedgerTopUp, Amount: amount, CreatedAt: now,
	})
	c := *w
	return &c, nil
}

// ListEntries returns a user's newest ledger entries first
func (s *MemoryStore) ListEntries(_ context.Context, userID string, limit int) ([]*models.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []*models.LedgerEntry{}
	for _, e := range s.entries {
		if e.UserID == userID {
			c := *e
			entries = append(entries, &c)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
