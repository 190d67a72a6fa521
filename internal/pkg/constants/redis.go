package constants

// Redis key formats
const (
	KeyDriverLocation   = "driver:location:%s" // Format: driver:location:{driver_id}
	KeyDriverGeo        = "drivers:geo"        // GEO set of online driver positions
	KeyAvailableDrivers = "drivers:available"  // Set of driver IDs free to take offers
	KeyDriverStatus     = "driver:status:%s"   // Format: driver:status:{driver_id}
)

// Redis hash fields
const (
	FieldLatitude  = "lat"
	FieldLongitude = "lng"
	FieldHeading   = "heading"
	FieldTile      = "tile"
	FieldTimestamp = "ts"
)
