package models

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a departure or arrival point
type Location struct {
	ID        uuid.UUID `json:"id" db:"id"`
	City      string    `json:"city" db:"city"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateLocationRequest represents the request to create a new location
type CreateLocationRequest struct {
	City    string `json:"city" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// UpdateLocationRequest represents the request to update a location
type UpdateLocationRequest struct {
	City    *string `json:"city,omitempty"`
	Address *string `json:"address,omitempty"`
}

// Validate validates the CreateLocationRequest
func (req *CreateLocationRequest) Validate() error {
	if len(req.City) > 100 {
		return NewValidationError("city", "must be at most 100 characters")
	}
	if len(req.Address) > 200 {
		return NewValidationError("address", "must be at most 200 characters")
	}
	return nil
}

// Validate validates the UpdateLocationRequest
func (req *UpdateLocationRequest) Validate() error {
	if req.City != nil && (len(*req.City) == 0 || len(*req.City) > 100) {
		return NewValidationError("city", "must be between 1 and 100 characters")
	}
	if req.Address != nil && (len(*req.Address) == 0 || len(*req.Address) > 200) {
		return NewValidationError("address", "must be between 1 and 200 characters")
	}
	return nil
}
