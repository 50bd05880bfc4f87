package models

import "time"

// User represents a DevDesk account used for authentication and resource
// ownership. It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUID string).
	ID string `json:"id"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Email is the unique login handle. Stored lower-case so that lookups
	// are case-insensitive.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never exposed via JSON and must never hold plaintext.
	PasswordHash string `json:"-"`

	// IsVerified reports whether the account's email address has been
	// confirmed via OTP. Login is rejected while false.
	IsVerified bool `json:"is_verified"`

	// OTP is the pending 6-digit verification code, if any.
	// Nil once verification succeeds or the code is cleaned up.
	OTP *string `json:"-"`

	// OTPExpiresAt is the instant after which OTP is no longer accepted.
	// Set and cleared together with OTP.
	OTPExpiresAt *time.Time `json:"-"`

	// RefreshToken holds the single refresh token currently valid for this
	// user. Rotation overwrites it; logout and account deletion clear it.
	// Presenting any other value must fail even if cryptographically valid.
	RefreshToken *string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// Summary returns the caller-visible projection of the user, stripped of
// every credential-related field.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
	}
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserSummary is the public representation of an account returned by the
// API. It carries no secret fields and is safe to hand to any client.
type UserSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileUpdate describes a partial profile mutation. Nil fields are left
// untouched; a non-nil Password is strength-checked and rehashed before
// persistence.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}
