package constants

// WebSocket event types
const (
	EventError = "error"
	EventPing  = "ping"
	EventPong  = "pong"

	// Client -> server
	EventDriverLocation   = "driver.location"
	EventObserverLocation = "observer.location"
	EventOfferResponse    = "offer.response"

	// Server -> client
	EventDriverPosition = "driver.position"
	EventOfferNew       = "offer.new"
	EventOfferClosed    = "offer.closed"
	EventOfferResult    = "offer.result"
	EventTripStatus     = "trip.status"
	EventTripNoDriver   = "trip.no_driver"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorInvalidLocation  = "invalid_location"
	ErrorUnknownEvent     = "unknown_event"
	ErrorOfferRejected    = "offer_rejected"
)

// ErrorSeverity controls how much detail an error frame carries
type ErrorSeverity int

const (
	ErrorSeverityClient ErrorSeverity = iota
	ErrorSeverityServer
	ErrorSeveritySecurity
)
