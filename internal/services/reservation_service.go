package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/policy"
)

// ReservationService implements the reservation lifecycle: creation with
// seat validation and price computation, listing with ownership filtering,
// and the confirmed→cancelled transition.
type ReservationService struct {
	reservations *database.ReservationRepository
	schedules    *database.ScheduleRepository
	logger       *logrus.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservations *database.ReservationRepository,
	schedules *database.ScheduleRepository,
	logger *logrus.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		schedules:    schedules,
		logger:       logger,
	}
}

// Create validates and persists a new reservation with status pending.
// The requested seat count is checked against the schedule's available seats
// as currently stored; nothing is decremented and no lock is taken, so two
// concurrent requests can both pass the check (see the service tests).
func (s *ReservationService) Create(ctx policy.AuthContext, req *models.CreateReservationRequest) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	schedule, err := s.schedules.GetByID(req.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	if req.NumberOfSeats > schedule.AvailableSeats {
		return nil, models.ErrInsufficientSeats
	}

	// Only staff and admins may create reservations on behalf of another
	// identity; everyone else books for themselves.
	ownerID := ctx.UserID
	if req.UserID != nil && (ctx.IsAdmin || ctx.IsStaff) {
		ownerID = *req.UserID
	}

	reservation := &models.Reservation{
		UserID:          ownerID,
		ScheduleID:      schedule.ID,
		NumberOfSeats:   req.NumberOfSeats,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationPending,
		TotalPrice:      schedule.Price * float64(req.NumberOfSeats),
	}

	if err := s.reservations.Create(reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"user_id":        ownerID,
		"schedule_id":    schedule.ID,
		"seats":          reservation.NumberOfSeats,
		"total_price":    reservation.TotalPrice,
	}).Info("Reservation created")

	return reservation, nil
}

// Get returns a single reservation, enforcing owner-or-admin access
func (s *ReservationService) Get(ctx policy.AuthContext, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	if !policy.OwnerOrAdmin(ctx, reservation.UserID) {
		return nil, models.ErrPermissionDenied
	}

	return reservation, nil
}

// List returns all reservations for admins and only the caller's own
// reservations for everyone else. Filtering happens in SQL, never client-side.
func (s *ReservationService) List(ctx policy.AuthContext) ([]models.Reservation, error) {
	if ctx.IsAdmin {
		return s.reservations.GetAll()
	}
	return s.reservations.GetByUserID(ctx.UserID)
}

// ListOwn returns the caller's reservations regardless of role
func (s *ReservationService) ListOwn(ctx policy.AuthContext) ([]models.Reservation, error) {
	return s.reservations.GetByUserID(ctx.UserID)
}

// Cancel transitions a reservation from confirmed to cancelled. Any other
// starting status is rejected and the row is left unchanged. Only the owner
// or an admin may cancel.
func (s *ReservationService) Cancel(ctx policy.AuthContext, reservationID uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.reservations.GetByID(reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}

	if !policy.OwnerOrAdmin(ctx, reservation.UserID) {
		return nil, models.ErrPermissionDenied
	}

	if reservation.Status != models.ReservationConfirmed {
		return nil, models.ErrCannotCancel
	}

	if err := s.reservations.UpdateStatus(reservation.ID, models.ReservationCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	reservation.Status = models.ReservationCancelled

	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
	}).Info("Reservation cancelled")

	return reservation, nil
}

// Delete removes a reservation. Admin only.
func (s *ReservationService) Delete(ctx policy.AuthContext, reservationID uuid.UUID) error {
	if !policy.AdminOnly(ctx) {
		return models.ErrPermissionDenied
	}

	if err := s.reservations.Delete(reservationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}
