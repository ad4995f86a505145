package handlers

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
	"github.com/citytransit/bus-reservation-backend/internal/services"
)

var reservationColumns = []string{
	"id", "user_id", "schedule_id", "number_of_seats",
	"special_requests", "status", "total_price", "created_at", "updated_at",
	"username", "departure_city", "arrival_city", "departure_time",
}

func reservationRow(reservationID, userID uuid.UUID, status models.ReservationStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		reservationID, userID, uuid.New(), 2,
		"", string(status), 3000.0, now, now,
		"traveler", "Colombo", "Kandy", now.Add(24 * time.Hour),
	}
}

func newReservationRouter(t *testing.T, userID uuid.UUID, isAdmin bool) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := newHandlerDB(t)
	svc := services.NewReservationService(
		database.NewReservationRepository(db),
		database.NewScheduleRepository(db),
		testHandlerLogger(),
	)
	handler := NewReservationHandler(svc, testHandlerLogger())

	router := gin.New()
	router.Use(withUser(userID, isAdmin))
	router.POST("/reservations/:id/cancel", handler.CancelReservation)
	router.GET("/reservations/:id", handler.GetReservationByID)
	return router, mock
}

func TestCancelReservationHandler(t *testing.T) {
	t.Run("Confirmed Reservation Cancelled", func(t *testing.T) {
		userID := uuid.New()
		reservationID := uuid.New()
		router, mock := newReservationRouter(t, userID, false)

		mock.ExpectQuery(`SELECT (.+) FROM reservations r`).
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(reservationRow(reservationID, userID, models.ReservationConfirmed)...))
		mock.ExpectExec(`UPDATE reservations`).
			WithArgs(models.ReservationCancelled, reservationID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations/"+reservationID.String()+"/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var reservation models.Reservation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reservation))
		assert.Equal(t, models.ReservationCancelled, reservation.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Pending Reservation Gets 400", func(t *testing.T) {
		userID := uuid.New()
		reservationID := uuid.New()
		router, mock := newReservationRouter(t, userID, false)

		mock.ExpectQuery(`SELECT (.+) FROM reservations r`).
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(reservationRow(reservationID, userID, models.ReservationPending)...))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations/"+reservationID.String()+"/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Cannot cancel")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Strangers Reservation Gets 403", func(t *testing.T) {
		reservationID := uuid.New()
		router, mock := newReservationRouter(t, uuid.New(), false)

		mock.ExpectQuery(`SELECT (.+) FROM reservations r`).
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(reservationRow(reservationID, uuid.New(), models.ReservationConfirmed)...))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations/"+reservationID.String()+"/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Malformed ID Gets 400", func(t *testing.T) {
		router, mock := newReservationRouter(t, uuid.New(), false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/reservations/not-a-uuid/cancel", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetReservationHandler(t *testing.T) {
	t.Run("Unknown Reservation Gets 404", func(t *testing.T) {
		reservationID := uuid.New()
		router, mock := newReservationRouter(t, uuid.New(), false)

		mock.ExpectQuery(`SELECT (.+) FROM reservations r`).
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(reservationColumns))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservations/"+reservationID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Admin Reads Any Reservation", func(t *testing.T) {
		reservationID := uuid.New()
		router, mock := newReservationRouter(t, uuid.New(), true)

		mock.ExpectQuery(`SELECT (.+) FROM reservations r`).
			WithArgs(reservationID).
			WillReturnRows(sqlmock.NewRows(reservationColumns).
				AddRow(reservationRow(reservationID, uuid.New(), models.ReservationConfirmed)...))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/reservations/"+reservationID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
