package services

import (
	"database/sql/driver"
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/citytransit/bus-reservation-backend/internal/database"
	"github.com/citytransit/bus-reservation-backend/internal/models"
)

func newTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var scheduleColumns = []string{
	"id", "bus_id", "departure_location_id", "arrival_location_id",
	"departure_time", "arrival_time", "price", "available_seats",
	"created_at", "updated_at",
	"bus_plate_number", "bus_model", "departure_city", "arrival_city",
}

func scheduleRow(scheduleID uuid.UUID, price float64, seats int) []driver.Value {
	now := time.Now()
	return []driver.Value{
		scheduleID, uuid.New(), uuid.New(), uuid.New(),
		now.Add(24 * time.Hour), now.Add(28 * time.Hour), price, seats,
		now, now,
		"NB-1234", "Volvo 9400", "Colombo", "Kandy",
	}
}

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

var userColumns = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"is_staff", "is_superuser", "created_at", "updated_at",
}

var profileColumns = []string{
	"id", "user_id", "full_name", "phone", "is_admin",
	"created_at", "updated_at", "username",
}
