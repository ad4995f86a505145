package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// RouteRepository handles database operations for routes
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeSelect = `
	SELECT r.id, r.name, r.departure_location_id, r.arrival_location_id,
		r.distance_km, r.duration_minutes, r.price, r.created_at, r.updated_at,
		dl.city AS departure_city, al.city AS arrival_city
	FROM routes r
	JOIN locations dl ON dl.id = r.departure_location_id
	JOIN locations al ON al.id = r.arrival_location_id
`

// Create creates a new route
func (r *RouteRepository) Create(route *models.Route) error {
	query := `
		INSERT INTO routes (
			id, name, departure_location_id, arrival_location_id,
			distance_km, duration_minutes, price, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if route.ID == uuid.Nil {
		route.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		route.ID, route.Name, route.DepartureLocationID, route.ArrivalLocationID,
		route.DistanceKM, route.DurationMinutes, route.Price, now, now,
	).Scan(&route.CreatedAt, &route.UpdatedAt)
}

// GetByID retrieves a route by ID with its endpoint cities
func (r *RouteRepository) GetByID(routeID uuid.UUID) (*models.Route, error) {
	query := routeSelect + ` WHERE r.id = $1`

	route := &models.Route{}
	if err := r.db.Get(route, query, routeID); err != nil {
		return nil, err
	}
	return route, nil
}

// GetAll retrieves all routes with their endpoint cities
func (r *RouteRepository) GetAll() ([]models.Route, error) {
	query := routeSelect + ` ORDER BY r.name ASC`

	routes := []models.Route{}
	if err := r.db.Select(&routes, query); err != nil {
		return nil, err
	}
	return routes, nil
}

// Update applies a partial update to a route
func (r *RouteRepository) Update(routeID uuid.UUID, req *models.UpdateRouteRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
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

	if req.DistanceKM != nil {
		updates = append(updates, fmt.Sprintf("distance_km = $%d", argCount))
		args = append(args, *req.DistanceKM)
		argCount++
	}

	if req.DurationMinutes != nil {
		updates = append(updates, fmt.Sprintf("duration_minutes = $%d", argCount))
		args = append(args, *req.DurationMinutes)
		argCount++
	}

	if req.Price != nil {
		updates = append(updates, fmt.Sprintf("price = $%d", argCount))
		args = append(args, *req.Price)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, routeID)

	query := fmt.Sprintf(`
		UPDATE routes
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

// Delete deletes a route
func (r *RouteRepository) Delete(routeID uuid.UUID) error {
	query := `DELETE FROM routes WHERE id = $1`
	result, err := r.db.Exec(query, routeID)
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
