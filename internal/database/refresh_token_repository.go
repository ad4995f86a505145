package database

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenRepository handles refresh token database operations
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Store persists a refresh token hash together with device metadata
func (r *RefreshTokenRepository) Store(
	userID uuid.UUID,
	token string,
	deviceType, userAgent, ipAddress string,
	expiresAt time.Time,
) error {
	query := `
		INSERT INTO refresh_tokens (
			id, user_id, token_hash, device_type, user_agent, ip_address,
			expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.db.Exec(
		query,
		uuid.New(), userID, hashToken(token),
		nullString(deviceType), nullString(userAgent), nullString(ipAddress),
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// IsValid reports whether the given token is stored for the user, not revoked
// and not expired
func (r *RefreshTokenRepository) IsValid(userID uuid.UUID, token string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM refresh_tokens
		WHERE user_id = $1 AND token_hash = $2
			AND revoked_at IS NULL AND expires_at > NOW()
	`

	var count int
	if err := r.db.QueryRow(query, userID, hashToken(token)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Revoke marks a single stored token as revoked
func (r *RefreshTokenRepository) Revoke(userID uuid.UUID, token string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND token_hash = $2 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(query, userID, hashToken(token))
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

// RevokeAll revokes every active token for the user (logout)
func (r *RefreshTokenRepository) RevokeAll(userID uuid.UUID) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE user_id = $1 AND revoked_at IS NULL
	`

	_, err := r.db.Exec(query, userID)
	return err
}

// nullString converts an empty string to a NULL parameter
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
