package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// ScheduleRepository handles database operations for schedules
type ScheduleRepository struct {
	db DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleSelect = `
	SELECT s.id, s.bus_id, s.departure_location_id, s.arrival_location_id,
		s.departure_time, s.arrival_time, s.price, s.available_seats,
		s.created_at, s.updated_at,
		b.plate_number AS bus_plate_number, b.model AS bus_model,
		dl.city AS departure_city, al.city AS arrival_city
	FROM schedules s
	JOIN buses b ON b.id = s.bus_id
	JOIN locations dl ON dl.id = s.departure_location_id
	JOIN locations al ON al.id = s.arrival_location_id
`

// Create creates a new schedule
func (r *ScheduleRepository) Create(schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (
			id, bus_id, departure_location_id, arrival_location_id,
			departure_time, arrival_time, price, available_seats,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		schedule.ID, schedule.BusID, schedule.DepartureLocationID,
		schedule.ArrivalLocationID, schedule.DepartureTime, schedule.ArrivalTime,
		schedule.Price, schedule.AvailableSeats, now, now,
	).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
}

// GetByID retrieves a schedule by ID with joined bus and location detail
func (r *ScheduleRepository) GetByID(scheduleID uuid.UUID) (*models.Schedule, error) {
	query := scheduleSelect + ` WHERE s.id = $1`

	schedule := &models.Schedule{}
	if err := r.db.Get(schedule, query, scheduleID); err != nil {
		return nil, err
	}
	return schedule, nil
}

// List retrieves schedules matching the given filters. Filters are ANDed;
// absent filters are no-ops. City matching is case-insensitive substring,
// date matching is an exact calendar-date match on departure_time.
func (r *ScheduleRepository) List(filter models.ScheduleFilter) ([]models.Schedule, error) {
	conditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.Departure != "" {
		conditions = append(conditions, fmt.Sprintf("dl.city ILIKE $%d", argCount))
		args = append(args, "%"+filter.Departure+"%")
		argCount++
	}

	if filter.Arrival != "" {
		conditions = append(conditions, fmt.Sprintf("al.city ILIKE $%d", argCount))
		args = append(args, "%"+filter.Arrival+"%")
		argCount++
	}

	if filter.Date != "" {
		date, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, models.NewValidationError("date", "must be in YYYY-MM-DD format")
		}
		conditions = append(conditions, fmt.Sprintf("s.departure_time::date = $%d", argCount))
		args = append(args, date)
		argCount++
	}

	query := scheduleSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY s.departure_time ASC"

	schedules := []models.Schedule{}
	if err := r.db.Select(&schedules, query, args...); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update applies a partial update to a schedule
func (r *ScheduleRepository) Update(scheduleID uuid.UUID, req *models.UpdateScheduleRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.BusID != nil {
		updates = append(updates, fmt.Sprintf("bus_id = $%d", argCount))
		args = append(args, *req.BusID)
		argCount++
	}

	if req.DepartureLocationID != nil {
		updates = append(updates, fmt.Sprintf("departure_location_id = $%d", argCount))
		args = append(args, *req.DepartureLocationID)
		argCount++
	}

	if req.ArrivalLocationID != nil {
		updates = append(updates, fmt.Sprintf("arrival_location_id = $%d", argCount))
		args = append(args, *req.ArrivalLocationID)
		argCount++
	}

	if req.DepartureTime != nil {
		updates = append(updates, fmt.Sprintf("departure_time = $%d", argCount))
		args = append(args, *req.DepartureTime)
		argCount++
	}

	if req.ArrivalTime != nil {
		updates = append(updates, fmt.Sprintf("arrival_time = $%d", argCount))
		args = append(args, *req.ArrivalTime)
		argCount++
	}

	if req.Price != nil {
		updates = append(updates, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *req.Price)
		argCount++
	}

	if req.AvailableSeats != nil {
		updates = append(updates, fmt.Sprintf("available_seats = $%d", argCount))
		args = append(args, *req.AvailableSeats)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, scheduleID)

	query := fmt.Sprintf(`
		UPDATE schedules
		SET %s
		WHERE id = $%d
	`, strings.Join(updates, ", "), argCount)

	result, err := r.db.Exec(query, args...)
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

// Delete deletes a schedule. Dependent reservations are removed by the
// store's cascade rule.
func (r *ScheduleRepository) Delete(scheduleID uuid.UUID) error {
	query := `DELETE FROM schedules WHERE id = $1`
	result, err := r.db.Exec(query, scheduleID)
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
