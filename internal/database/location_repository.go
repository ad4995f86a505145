package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// LocationRepository handles database operations for locations
type LocationRepository struct {
	db DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Create creates a new location
func (r *LocationRepository) Create(location *models.Location) error {
	query := `
		INSERT INTO locations (
			id, city, address, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if location.ID == uuid.Nil {
		location.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		location.ID, location.City, location.Address, now, now,
	).Scan(&location.CreatedAt, &location.UpdatedAt)
}

// GetByID retrieves a location by ID
func (r *LocationRepository) GetByID(locationID uuid.UUID) (*models.Location, error) {
	query := `
		SELECT id, city, address, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	location := &models.Location{}
	if err := r.db.Get(location, query, locationID); err != nil {
		return nil, err
	}
	return location, nil
}

// GetAll retrieves all locations
func (r *LocationRepository) GetAll() ([]models.Location, error) {
	query := `
		SELECT id, city, address, created_at, updated_at
		FROM locations
		ORDER BY city ASC
	`

	locations := []models.Location{}
	if err := r.db.Select(&locations, query); err != nil {
		return nil, err
	}
	return locations, nil
}

// Update applies a partial update to a location
func (r *LocationRepository) Update(locationID uuid.UUID, req *models.UpdateLocationRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.City != nil {
		updates = append(updates, fmt.Sprintf("city = $%d", argCount))
		args = append(args, *req.City)
		argCount++
	}

	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *req.Address)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, locationID)

	query := fmt.Sprintf(`
		UPDATE locations
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

// Delete deletes a location. Dependent routes and schedules are removed by
// the store's cascade rule.
func (r *LocationRepository) Delete(locationID uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`
	result, err := r.db.Exec(query, locationID)
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
