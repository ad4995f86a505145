package models

import (
	"time"

	"github.com/google/uuid"
)

// Bus represents a bus in the fleet
type Bus struct {
	ID          uuid.UUID `json:"id" db:"id"`
	PlateNumber string    `json:"plate_number" db:"plate_number"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Model       string    `json:"model" db:"model"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateBusRequest represents the request to create a new bus
type CreateBusRequest struct {
	PlateNumber string `json:"plate_number" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,gt=0"`
	Model       string `json:"model" binding:"required"`
}

// UpdateBusRequest represents the request to update bus information
type UpdateBusRequest struct {
	PlateNumber *string `json:"plate_number,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Model       *string `json:"model,omitempty"`
}

// Validate validates the CreateBusRequest
func (req *CreateBusRequest) Validate() error {
	if len(req.PlateNumber) > 20 {
		return NewValidationError("plate_number", "must be at most 20 characters")
	}
	if req.Capacity <= 0 {
		return NewValidationError("capacity", "must be greater than 0")
	}
	if len(req.Model) > 100 {
		return NewValidationError("model", "must be at most 100 characters")
	}
	return nil
}

// Validate validates the UpdateBusRequest
func (req *UpdateBusRequest) Validate() error {
	if req.PlateNumber != nil && (len(*req.PlateNumber) == 0 || len(*req.PlateNumber) > 20) {
		return NewValidationError("plate_number", "must be between 1 and 20 characters")
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return NewValidationError("capacity", "must be greater than 0")
	}
	if req.Model != nil && (len(*req.Model) == 0 || len(*req.Model) > 100) {
		return NewValidationError("model", "must be between 1 and 100 characters")
	}
	return nil
}
