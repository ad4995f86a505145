package models

import (
	"time"

	"github.com/google/uuid"
)

// Route is an origin-destination pairing with nominal distance, duration and
// price, independent of any specific trip instance.
type Route struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	DepartureLocationID uuid.UUID `json:"departure_location" db:"departure_location_id"`
	ArrivalLocationID   uuid.UUID `json:"arrival_location" db:"arrival_location_id"`
	DistanceKM          float64   `json:"distance" db:"distance_km"`
	DurationMinutes     int       `json:"duration" db:"duration_minutes"`
	Price               float64   `json:"price" db:"price"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`

	// Joined from locations for list/detail responses
	DepartureCity NullString `json:"departure_city,omitempty" db:"departure_city"`
	ArrivalCity   NullString `json:"arrival_city,omitempty" db:"arrival_city"`
}

// CreateRouteRequest represents the request to create a new route
type CreateRouteRequest struct {
	Name                string    `json:"name" binding:"required"`
	DepartureLocationID uuid.UUID `json:"departure_location" binding:"required"`
	ArrivalLocationID   uuid.UUID `json:"arrival_location" binding:"required"`
	DistanceKM          float64   `json:"distance" binding:"required"`
	DurationMinutes     int       `json:"duration" binding:"required"`
	Price               float64   `json:"price"`
}

// UpdateRouteRequest represents the request to update a route
type UpdateRouteRequest struct {
	Name                *string    `json:"name,omitempty"`
	DepartureLocationID *uuid.UUID `json:"departure_location,omitempty"`
	ArrivalLocationID   *uuid.UUID `json:"arrival_location,omitempty"`
	DistanceKM          *float64   `json:"distance,omitempty"`
	DurationMinutes     *int       `json:"duration,omitempty"`
	Price               *float64   `json:"price,omitempty"`
}

// Validate validates the CreateRouteRequest
func (req *CreateRouteRequest) Validate() error {
	if len(req.Name) > 100 {
		return NewValidationError("name", "must be at most 100 characters")
	}
	if req.DepartureLocationID == req.ArrivalLocationID {
		return NewValidationError("arrival_location", "departure and arrival locations cannot be the same")
	}
	if req.DistanceKM <= 0 {
		return NewValidationError("distance", "must be greater than 0")
	}
	if req.DurationMinutes <= 0 {
		return NewValidationError("duration", "must be greater than 0")
	}
	if req.Price < 0 {
		return NewValidationError("price", "cannot be negative")
	}
	return nil
}

// ValidateAgainst validates the update against the stored route, so that an
// update changing only one endpoint still cannot collapse the route onto a
// single location.
func (req *UpdateRouteRequest) ValidateAgainst(current *Route) error {
	if req.Name != nil && (len(*req.Name) == 0 || len(*req.Name) > 100) {
		return NewValidationError("name", "must be between 1 and 100 characters")
	}
	departure := current.DepartureLocationID
	if req.DepartureLocationID != nil {
		departure = *req.DepartureLocationID
	}
	arrival := current.ArrivalLocationID
	if req.ArrivalLocationID != nil {
		arrival = *req.ArrivalLocationID
	}
	if departure == arrival {
		return NewValidationError("arrival_location", "departure and arrival locations cannot be the same")
	}
	if req.DistanceKM != nil && *req.DistanceKM <= 0 {
		return NewValidationError("distance", "must be greater than 0")
	}
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return NewValidationError("duration", "must be greater than 0")
	}
	if req.Price != nil && *req.Price < 0 {
		return NewValidationError("price", "cannot be negative")
	}
	return nil
}
