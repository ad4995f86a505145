package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// ProfileRepository handles database operations for user profiles
type ProfileRepository struct {
	db DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile
func (r *ProfileRepository) Create(profile *models.Profile) error {
	query := `
		INSERT INTO user_profiles (
			id, user_id, full_name, phone, is_admin, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now()

	return r.db.QueryRow(
		query,
		profile.ID, profile.UserID, profile.FullName, profile.Phone,
		profile.IsAdmin, now, now,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

// CreateTx inserts a new profile within an existing transaction
func (r *ProfileRepository) CreateTx(tx *sqlx.Tx, profile *models.Profile) error {
	query := `
		INSERT INTO user_profiles (
			id, user_id, full_name, phone, is_admin, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now()

	return tx.QueryRow(
		query,
		profile.ID, profile.UserID, profile.FullName, profile.Phone,
		profile.IsAdmin, now, now,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

// GetByUserID retrieves the profile owned by the given identity
func (r *ProfileRepository) GetByUserID(userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.full_name, p.phone, p.is_admin,
			p.created_at, p.updated_at, u.username
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	profile := &models.Profile{}
	if err := r.db.Get(profile, query, userID); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetAll retrieves all profiles (admin listing)
func (r *ProfileRepository) GetAll() ([]models.Profile, error) {
	query := `
		SELECT p.id, p.user_id, p.full_name, p.phone, p.is_admin,
			p.created_at, p.updated_at, u.username
		FROM user_profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
	`

	profiles := []models.Profile{}
	if err := r.db.Select(&profiles, query); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update applies a partial update to the profile owned by the given identity
func (r *ProfileRepository) Update(userID uuid.UUID, req *models.UpdateProfileRequest) error {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argCount))
		args = append(args, *req.FullName)
		argCount++
	}

	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argCount))
		args = append(args, *req.Phone)
		argCount++
	}

	if req.IsAdmin != nil {
		updates = append(updates, fmt.Sprintf("is_admin = $%d", argCount))
		args = append(args, *req.IsAdmin)
		argCount++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(`
		UPDATE user_profiles
		SET %s
		WHERE user_id = $%d
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
		return models.ErrNotFound
	}

	return nil
}
