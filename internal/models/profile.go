package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the one-to-one record associated with an identity. It carries
// the admin flag used by all permission checks.
type Profile struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     string    `json:"phone" db:"phone"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined from users for list/detail responses
	Username NullString `json:"username,omitempty" db:"username"`
}

// UpdateProfileRequest represents a partial profile update. UserID and IsAdmin
// are only honored when the caller is an admin.
type UpdateProfileRequest struct {
	UserID   *uuid.UUID `json:"user_id,omitempty"`
	FullName *string    `json:"full_name,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	IsAdmin  *bool      `json:"is_admin,omitempty"`
}

// Validate validates the UpdateProfileRequest
func (req *UpdateProfileRequest) Validate() error {
	if req.FullName != nil && len(*req.FullName) > 200 {
		return NewValidationError("full_name", "must be at most 200 characters")
	}
	if req.Phone != nil && len(*req.Phone) > 20 {
		return NewValidationError("phone", "must be at most 20 characters")
	}
	return nil
}
