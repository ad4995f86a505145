package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
)

// ProfileService provisions and maintains user profiles
type ProfileService struct {
	profiles *database.ProfileRepository
	users    *database.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles *database.ProfileRepository, users *database.UserRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
	}
}

// EnsureProfile returns the profile for the given identity, creating one on
// first access. The admin flag of a new profile is seeded from the identity's
// staff/superuser flags. Idempotent after the first call.
func (s *ProfileService) EnsureProfile(userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profile = &models.Profile{
		UserID:   user.ID,
		FullName: fullNameFor(user),
		Phone:    "",
		IsAdmin:  user.IsStaff || user.IsSuperuser,
	}
	if err := s.profiles.Create(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// fullNameFor derives a display name from the identity's name fields,
// falling back to the username
func fullNameFor(user *models.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return user.Username
	}
	return name
}
