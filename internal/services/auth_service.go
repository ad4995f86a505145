package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/utils"
	"github.com/citytransit/bus-reservation-backend/pkg/jwt"
	"github.com/citytransit/bus-reservation-backend/pkg/validator"
)

// ErrInvalidCredentials indicates a failed username/password check
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidRefreshToken indicates a refresh token that is unknown, revoked
// or expired
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// uniqueViolation is the Postgres error code for unique constraint failures
const uniqueViolation = "23505"

// timeNow is stubbed in tests
var timeNow = time.Now

// TokenPair is an access/refresh token pair issued to a client
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// AuthService implements registration, login and token lifecycle
type AuthService struct {
	db            database.DB
	users         *database.UserRepository
	profiles      *database.ProfileRepository
	refreshTokens *database.RefreshTokenRepository
	profileSvc    *ProfileService
	jwtService    *jwt.Service
	credentials   *validator.CredentialValidator
	bcryptCost    int
	logger        *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	db database.DB,
	users *database.UserRepository,
	profiles *database.ProfileRepository,
	refreshTokens *database.RefreshTokenRepository,
	profileSvc *ProfileService,
	jwtService *jwt.Service,
	credentials *validator.CredentialValidator,
	bcryptCost int,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		db:            db,
		users:         users,
		profiles:      profiles,
		refreshTokens: refreshTokens,
		profileSvc:    profileSvc,
		jwtService:    jwtService,
		credentials:   credentials,
		bcryptCost:    bcryptCost,
		logger:        logger,
	}
}

// Register creates an identity and its profile atomically and issues a token
// pair. A duplicate username or email leaves no rows behind.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, *models.Profile, *TokenPair, error) {
	username, err := s.credentials.ValidateUsername(req.Username)
	if err != nil {
		return nil, nil, nil, models.NewValidationError("username", err.Error())
	}
	email, err := s.credentials.ValidateEmail(req.Email)
	if err != nil {
		return nil, nil, nil, models.NewValidationError("email", err.Error())
	}
	if err := s.credentials.ValidatePassword(req.Password); err != nil {
		return nil, nil, nil, models.NewValidationError("password", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	profile := &models.Profile{
		FullName: strings.TrimSpace(req.FirstName + " " + req.LastName),
		Phone:    strings.TrimSpace(req.Phone),
	}
	if profile.FullName == "" {
		profile.FullName = username
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.users.CreateTx(tx, user); err != nil {
		tx.Rollback()
		if ve := uniqueViolationError(err); ve != nil {
			return nil, nil, nil, ve
		}
		return nil, nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile.UserID = user.ID
	if err := s.profiles.CreateTx(tx, profile); err != nil {
		tx.Rollback()
		return nil, nil, nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	tokens, err := s.issueTokens(user, profile, "", "", "")
	if err != nil {
		return nil, nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, profile, tokens, nil
}

// Login verifies credentials, ensures a profile exists and issues a token
// pair. Device metadata is stored alongside the refresh token.
func (s *AuthService) Login(req *models.LoginRequest, ipAddress, userAgent string) (*models.User, *models.Profile, *TokenPair, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil, ErrInvalidCredentials
		}
		return nil, nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, nil, ErrInvalidCredentials
	}

	profile, err := s.profileSvc.EnsureProfile(user.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	tokens, err := s.issueTokens(user, profile, ipAddress, userAgent, deviceTypeFor(userAgent))
	if err != nil {
		return nil, nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": profile.IsAdmin,
	}).Info("User logged in")

	return user, profile, tokens, nil
}

// Refresh exchanges a valid stored refresh token for a new token pair,
// revoking the old one.
func (s *AuthService) Refresh(refreshToken, ipAddress, userAgent string) (*TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	valid, err := s.refreshTokens.IsValid(claims.UserID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !valid {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	profile, err := s.profileSvc.EnsureProfile(user.ID)
	if err != nil {
		return nil, err
	}

	// Rotate: the presented token stops working once the new pair is issued
	if err := s.refreshTokens.Revoke(claims.UserID, refreshToken); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(user, profile, ipAddress, userAgent, deviceTypeFor(userAgent))
}

// Logout revokes all active refresh tokens for the identity
func (s *AuthService) Logout(userID uuid.UUID) error {
	if err := s.refreshTokens.RevokeAll(userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// issueTokens generates a token pair and stores the refresh token hash
func (s *AuthService) issueTokens(user *models.User, profile *models.Profile, ipAddress, userAgent, deviceType string) (*TokenPair, error) {
	isAdmin := profile != nil && profile.IsAdmin

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, isAdmin, user.IsStaff)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	expiresAt := timeNow().Add(s.jwtService.RefreshTokenExpiry())
	if err := s.refreshTokens.Store(user.ID, refreshToken, deviceType, userAgent, ipAddress, expiresAt); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// deviceTypeFor summarizes a User-Agent header into a short device label
func deviceTypeFor(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	info := utils.ParseUserAgent(userAgent)
	return info.DeviceType
}

// uniqueViolationError maps Postgres unique violations on users to
// field-level validation errors
func uniqueViolationError(err error) *models.ValidationError {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return nil
	}
	if strings.Contains(pqErr.Constraint, "email") {
		return models.NewValidationError("email", "a user with this email already exists")
	}
	return models.NewValidationError("username", "a user with this username already exists")
}
