package models

import (
	"time"

	"github.com/google/uuid"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a seat booking against one schedule, owned by one identity
type Reservation struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	UserID          uuid.UUID         `json:"user" db:"user_id"`
	ScheduleID      uuid.UUID         `json:"schedule" db:"schedule_id"`
	NumberOfSeats   int               `json:"number_of_seats" db:"number_of_seats"`
	SpecialRequests string            `json:"special_requests" db:"special_requests"`
	Status          ReservationStatus `json:"status" db:"status"`
	TotalPrice      float64           `json:"total_price" db:"total_price"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`

	// Joined from users and schedules for list/detail responses
	Username      NullString `json:"username,omitempty" db:"username"`
	DepartureCity NullString `json:"departure_city,omitempty" db:"departure_city"`
	ArrivalCity   NullString `json:"arrival_city,omitempty" db:"arrival_city"`
	DepartureTime NullTime   `json:"departure_time,omitempty" db:"departure_time"`
}

// CreateReservationRequest represents the request to create a reservation.
// UserID is only honored when the caller is staff or admin; otherwise the
// reservation is attributed to the caller.
type CreateReservationRequest struct {
	ScheduleID      uuid.UUID  `json:"schedule" binding:"required"`
	NumberOfSeats   int        `json:"number_of_seats" binding:"required,gt=0"`
	SpecialRequests string     `json:"special_requests"`
	UserID          *uuid.UUID `json:"user,omitempty"`
}

// Validate validates the CreateReservationRequest
func (req *CreateReservationRequest) Validate() error {
	if req.NumberOfSeats <= 0 {
		return NewValidationError("number_of_seats", "must be greater than 0")
	}
	return nil
}
