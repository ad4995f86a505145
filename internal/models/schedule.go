package models

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is a specific bus trip instance with fixed departure/arrival times
// and seat inventory.
type Schedule struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	BusID               uuid.UUID `json:"bus" db:"bus_id"`
	DepartureLocationID uuid.UUID `json:"departure_location" db:"departure_location_id"`
	ArrivalLocationID   uuid.UUID `json:"arrival_location" db:"arrival_location_id"`
	DepartureTime       time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime         time.Time `json:"arrival_time" db:"arrival_time"`
	Price               float64   `json:"price" db:"price"`
	AvailableSeats      int       `json:"available_seats" db:"available_seats"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`

	// Joined from buses and locations for list/detail responses
	BusPlateNumber NullString `json:"bus_plate_number,omitempty" db:"bus_plate_number"`
	BusModel       NullString `json:"bus_model,omitempty" db:"bus_model"`
	DepartureCity  NullString `json:"departure_city,omitempty" db:"departure_city"`
	ArrivalCity    NullString `json:"arrival_city,omitempty" db:"arrival_city"`
}

// CreateScheduleRequest represents the request to create a new schedule
type CreateScheduleRequest struct {
	BusID               uuid.UUID `json:"bus" binding:"required"`
	DepartureLocationID uuid.UUID `json:"departure_location" binding:"required"`
	ArrivalLocationID   uuid.UUID `json:"arrival_location" binding:"required"`
	DepartureTime       time.Time `json:"departure_time" binding:"required"`
	ArrivalTime         time.Time `json:"arrival_time" binding:"required"`
	Price               float64   `json:"price"`
	AvailableSeats      int       `json:"available_seats" binding:"required,gt=0"`
}

// UpdateScheduleRequest represents a partial schedule update. Cross-field
// invariants are checked against the stored row merged with the request.
type UpdateScheduleRequest struct {
	BusID               *uuid.UUID `json:"bus,omitempty"`
	DepartureLocationID *uuid.UUID `json:"departure_location,omitempty"`
	ArrivalLocationID   *uuid.UUID `json:"arrival_location,omitempty"`
	DepartureTime       *time.Time `json:"departure_time,omitempty"`
	ArrivalTime         *time.Time `json:"arrival_time,omitempty"`
	Price               *float64   `json:"price,omitempty"`
	AvailableSeats      *int       `json:"available_seats,omitempty"`
}

// ScheduleFilter holds the optional schedule listing filters. Filters are
// ANDed together; empty values are no-ops.
type ScheduleFilter struct {
	Departure string // case-insensitive substring match on departure city
	Arrival   string // case-insensitive substring match on arrival city
	Date      string // exact calendar date (YYYY-MM-DD) of departure
}

// ValidateScheduleTimes enforces that arrival is strictly after departure
func ValidateScheduleTimes(departure, arrival time.Time) error {
	if !arrival.After(departure) {
		return NewValidationError("arrival_time", "arrival time must be after departure time")
	}
	return nil
}

// ValidateScheduleEndpoints enforces that departure and arrival locations differ
func ValidateScheduleEndpoints(departure, arrival uuid.UUID) error {
	if departure == arrival {
		return NewValidationError("arrival_location", "departure and arrival locations cannot be the same")
	}
	return nil
}

// Validate validates the CreateScheduleRequest
func (req *CreateScheduleRequest) Validate() error {
	if err := ValidateScheduleTimes(req.DepartureTime, req.ArrivalTime); err != nil {
		return err
	}
	if err := ValidateScheduleEndpoints(req.DepartureLocationID, req.ArrivalLocationID); err != nil {
		return err
	}
	if req.Price < 0 {
		return NewValidationError("price", "cannot be negative")
	}
	if req.AvailableSeats <= 0 {
		return NewValidationError("available_seats", "must be greater than 0")
	}
	return nil
}

// ValidateAgainst validates the update merged with the current stored schedule
func (req *UpdateScheduleRequest) ValidateAgainst(current *Schedule) error {
	departureTime := current.DepartureTime
	if req.DepartureTime != nil {
		departureTime = *req.DepartureTime
	}
	arrivalTime := current.ArrivalTime
	if req.ArrivalTime != nil {
		arrivalTime = *req.ArrivalTime
	}
	if err := ValidateScheduleTimes(departureTime, arrivalTime); err != nil {
		return err
	}

	departureLoc := current.DepartureLocationID
	if req.DepartureLocationID != nil {
		departureLoc = *req.DepartureLocationID
	}
	arrivalLoc := current.ArrivalLocationID
	if req.ArrivalLocationID != nil {
		arrivalLoc = *req.ArrivalLocationID
	}
	if err := ValidateScheduleEndpoints(departureLoc, arrivalLoc); err != nil {
		return err
	}

	if req.Price != nil && *req.Price < 0 {
		return NewValidationError("price", "cannot be negative")
	}
	if req.AvailableSeats != nil && *req.AvailableSeats < 0 {
		return NewValidationError("available_seats", "cannot be negative")
	}
	return nil
}
