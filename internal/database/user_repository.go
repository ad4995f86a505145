package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
		is_staff, is_superuser, created_at, updated_at`

// CreateTx inserts a new user within an existing transaction. Registration
// must persist the user and its profile atomically.
func (r *UserRepository) CreateTx(tx *sqlx.Tx, user *models.User) error {
	query := `
		INSERT INTO users (
			id, username, email, password_hash, first_name, last_name,
			is_staff, is_superuser, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()

	return tx.QueryRow(
		query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.IsStaff, user.IsSuperuser,
		now, now,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID uuid.UUID) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user := &models.User{}
	if err := r.db.Get(user, query, userID); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1`, userColumns)

	user := &models.User{}
	if err := r.db.Get(user, query, username); err != nil {
		return nil, err
	}
	return user, nil
}
