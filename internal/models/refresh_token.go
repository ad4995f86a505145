package models

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a stored (hashed) refresh token with the device metadata
// captured at issue time
type RefreshToken struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash  string     `json:"-" db:"token_hash"`
	DeviceType NullString `json:"device_type,omitempty" db:"device_type"`
	UserAgent  NullString `json:"user_agent,omitempty" db:"user_agent"`
	IPAddress  NullString `json:"ip_address,omitempty" db:"ip_address"`
	ExpiresAt  time.Time  `json:"expires_at" db:"expires_at"`
	RevokedAt  NullTime   `json:"revoked_at,omitempty" db:"revoked_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
