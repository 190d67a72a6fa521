package models

// Role identifies which party is acting on a trip
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleRider, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
