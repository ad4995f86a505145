package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// BusRepository handles database operations for buses
type BusRepository struct {
	db DB
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db DB) *BusRepository {
	return &BusRepository{db: db}
}

// Create creates a new bus
func (r *BusRepository) Create(bus *models.Bus) error {
	query := `
		INSERT INTO buses (
			id, plate_number, capacity, model, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if bus.ID == uuid.Nil {
		bus.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		bus.ID, bus.PlateNumber, bus.Capacity, bus.Model, now, now,
	).Scan(&bus.CreatedAt, &bus.UpdatedAt)
}

// GetByID retrieves a bus by ID
func (r *BusRepository) GetByID(busID uuid.UUID) (*models.Bus, error) {
	query := `
		SELECT id, plate_number, capacity, model, created_at, updated_at
		FROM buses
		WHERE id = $1
	`

	bus := &models.Bus{}
	if err := r.db.Get(bus, query, busID); err != nil {
		return nil, err
	}
	return bus, nil
}

// GetByPlateNumber retrieves a bus by plate number. Returns nil when no bus
// has that plate.
func (r *BusRepository) GetByPlateNumber(plateNumber string) (*models.Bus, error) {
	query := `
		SELECT id, plate_number, capacity, model, created_at, updated_at
		FROM buses
		WHERE plate_number = $1
	`

	bus := &models.Bus{}
	err := r.db.Get(bus, query, plateNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return bus, nil
}

// GetAll retrieves all buses
func (r *BusRepository) GetAll() ([]models.Bus, error) {
	query := `
		SELECT id, plate_number, capacity, model, created_at, updated_at
		FROM buses
		ORDER BY created_at DESC
	`

	buses := []models.Bus{}
	if err := r.db.Select(&buses, query); err != nil {
		return nil, err
	}
	return buses, nil
}

// Update applies a partial update to a bus
func (r *BusRepository) Update(busID uuid.UUID, req *models.UpdateBusRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.PlateNumber != nil {
		updates = append(updates, fmt.Sprintf("plate_number = $%d", argCount))
		args = append(args, *req.PlateNumber)
		argCount++
	}

	if req.Capacity != nil {
		updates = append(updates, fmt.Sprintf("capacity = $%d", argCount))
		args = append(args, *req.Capacity)
		argCount++
	}

	if req.Model != nil {
		updates = append(updates, fmt.Sprintf("model = $%d", argCount))
		args = append(args, *req.Model)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, busID)

	query := fmt.Sprintf(`
		UPDATE buses
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

// Delete deletes a bus. Dependent schedules are removed by the store's
// cascade rule.
func (r *BusRepository) Delete(busID uuid.UUID) error {
	query := `DELETE FROM buses WHERE id = $1`
	result, err := r.db.Exec(query, busID)
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
