package domain

import (
	"errors"
	"time"
)

// Role is the closed set of actor types on the platform.
type Role string

const (
	RoleFarmer     Role = "farmer"
	RoleHub        Role = "hub"
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleTransport  Role = "transport"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleFarmer, RoleHub, RoleCustomer, RoleRestaurant, RoleTransport:
		return true
	}
	return false
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrAccessDenied       = errors.New("access denied")
	ErrProviderDegraded   = errors.New("provider unavailable")
	ErrReadOnlySession    = errors.New("read-only session")
)

// User models a registered actor: a farmer, hub manager, customer,
// restaurant, or transport operator.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	// HubID is set on hub records; ManagerID is the user that administers
	// that hub and is checked on every hub-scoped access.
	HubID        string    `json:"hub_id,omitempty"`
	ManagerID    string    `json:"manager_id,omitempty"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	Language     string    `json:"language,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ManagesHub reports whether requesterID is allowed to act on this hub record.
// A mismatch is an authorization failure, never a not-found.
func (u *User) ManagesHub(requesterID string) bool {
	return u.Role == RoleHub && u.ManagerID == requesterID
}
