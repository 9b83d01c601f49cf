package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an authenticated storefront user. The OpenID value is the
// externally-verified identity handed over by the auth gateway.
type User struct {
	ID           int64     `json:"id" db:"id"`
	OpenID       string    `json:"openId" db:"open_id"`
	Name         *string   `json:"name" db:"name"`
	Email        *string   `json:"email" db:"email"`
	LoginMethod  *string   `json:"loginMethod" db:"login_method"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	LastSignedIn time.Time `json:"lastSignedIn" db:"last_signed_in"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserUpsert carries the fields for an insert-or-update keyed on OpenID.
// Nil pointers mean "leave the stored value untouched"; a pointer to an
// empty string clears the column.
type UserUpsert struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	LastSignedIn *time.Time
}
