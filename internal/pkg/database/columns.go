package database

// Column lists shared by every repository that scans trips or offers into
// models.TripDTO and models.OfferDTO
const (
	TripColumns = `id, rider_id, driver_id, pickup_lat, pickup_lng, drop_lat, drop_lng,
		service_type, fare, status, cancel_reason, requested_at, accepted_at, arrived_at,
		started_at, completed_at, cancelled_at, updated_at`

	OfferColumns = `id, trip_id, driver_id, round, rank, score, status, reason,
		created_at, sent_at, responded_at, expires_at`
)
