package constants

// NATS Subjects
const (
	// Inbound connection events from the real-time transport
	SubjectDriverLocation   = "location.driver"
	SubjectObserverLocation = "location.observer"
	SubjectOfferResponse    = "offer.response"

	// Outbound domain events
	SubjectDriverLocationUpdated = "location.driver.updated"
	SubjectTripRequested         = "trip.requested"
	SubjectTripStatusChanged     = "trip.status.changed"
	SubjectTripDispatchFailed    = "trip.dispatch.failed"
	SubjectTripCompleted         = "trip.completed"
)
