package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// ReservationRepository handles database operations for reservations
type ReservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationSelect = `
	SELECT r.id, r.user_id, r.schedule_id, r.number_of_seats,
		r.special_requests, r.status, r.total_price, r.created_at, r.updated_at,
		u.username, dl.city AS departure_city, al.city AS arrival_city,
		s.departure_time
	FROM reservations r
	JOIN users u ON u.id = r.user_id
	JOIN schedules s ON s.id = r.schedule_id
	JOIN locations dl ON dl.id = s.departure_location_id
	JOIN locations al ON al.id = s.arrival_location_id
`

// Create persists a new reservation
func (r *ReservationRepository) Create(reservation *models.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, user_id, schedule_id, number_of_seats, special_requests,
			status, total_price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		reservation.ID, reservation.UserID, reservation.ScheduleID,
		reservation.NumberOfSeats, reservation.SpecialRequests,
		reservation.Status, reservation.TotalPrice, now, now,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)
}

// GetByID retrieves a reservation by ID with joined trip detail
func (r *ReservationRepository) GetByID(reservationID uuid.UUID) (*models.Reservation, error) {
	query := reservationSelect + ` WHERE r.id = $1`

	reservation := &models.Reservation{}
	if err := r.db.Get(reservation, query, reservationID); err != nil {
		return nil, err
	}
	return reservation, nil
}

// GetAll retrieves all reservations (admin listing)
func (r *ReservationRepository) GetAll() ([]models.Reservation, error) {
	query := reservationSelect + ` ORDER BY r.created_at DESC`

	reservations := []models.Reservation{}
	if err := r.db.Select(&reservations, query); err != nil {
		return nil, err
	}
	return reservations, nil
}

// GetByUserID retrieves the reservations owned by the given identity.
// Ownership filtering happens here, server-side, never in the client.
func (r *ReservationRepository) GetByUserID(userID uuid.UUID) ([]models.Reservation, error) {
	query := reservationSelect + ` WHERE r.user_id = $1 ORDER BY r.created_at DESC`

	reservations := []models.Reservation{}
	if err := r.db.Select(&reservations, query, userID); err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus transitions a reservation to the given status
func (r *ReservationRepository) UpdateStatus(reservationID uuid.UUID, status models.ReservationStatus) error {
	query := `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(query, status, reservationID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete deletes a reservation
func (r *ReservationRepository) Delete(reservationID uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`
	result, err := r.db.Exec(query, reservationID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
