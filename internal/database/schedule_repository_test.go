package database

import (
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

var scheduleColumns = []string{
	"id", "bus_id", "departure_location_id", "arrival_location_id",
	"departure_time", "arrival_time", "price", "available_seats",
	"created_at", "updated_at",
	"bus_plate_number", "bus_model", "departure_city", "arrival_city",
}

func scheduleRow(scheduleID uuid.UUID, departure, arrival string, seats int) []driver.Value {
	now := time.Now()
	return []driver.Value{
		scheduleID, uuid.New(), uuid.New(), uuid.New(),
		now.Add(24 * time.Hour), now.Add(28 * time.Hour), 1500.0, seats,
		now, now,
		"NB-1234", "Volvo 9400", departure, arrival,
	}
}

func TestListSchedules(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewScheduleRepository(db)

	t.Run("No Filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s`).
			WillReturnRows(sqlmock.NewRows(scheduleColumns).
				AddRow(scheduleRow(uuid.New(), "Colombo", "Kandy", 40)...).
				AddRow(scheduleRow(uuid.New(), "Galle", "Jaffna", 30)...))

		schedules, err := repo.List(models.ScheduleFilter{})
		require.NoError(t, err)
		assert.Len(t, schedules, 2)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Departure Filter Uses Case Insensitive Substring", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM schedules s (.+) WHERE dl.city ILIKE`).
			WithArgs("%col%").
			WillReturnRows(sqlmock.NewRows(scheduleColumns).
				AddRow(scheduleRow(uuid.New(), "Colombo", "Kandy", 40)...))

		schedules, err := repo.List(models.ScheduleFilter{Departure: "col"})
		require.NoError(t, err)
		require.Len(t, schedules, 1)
		assert.Equal(t, "Colombo", schedules[0].DepartureCity.String)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("All Filters Combined With AND", func(t *testing.T) {
		date, err := time.Parse("2006-01-02", "2026-01-15")
		require.NoError(t, err)

		mock.ExpectQuery(`WHERE dl.city ILIKE (.+) AND al.city ILIKE (.+) AND s.departure_time`).
			WithArgs("%col%", "%kan%", date).
			WillReturnRows(sqlmock.NewRows(scheduleColumns))

		schedules, err := repo.List(models.ScheduleFilter{
			Departure: "col",
			Arrival:   "kan",
			Date:      "2026-01-15",
		})
		require.NoError(t, err)
		assert.Empty(t, schedules)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalid Date Format", func(t *testing.T) {
		schedules, err := repo.List(models.ScheduleFilter{Date: "15-01-2026"})
		assert.Nil(t, schedules)

		ve, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "date", ve.Field)
	})
}

func TestCreateSchedule(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewScheduleRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		departure := now.Add(24 * time.Hour)
		arrival := now.Add(28 * time.Hour)

		mock.ExpectQuery(`INSERT INTO schedules`).
			WithArgs(
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				departure, arrival, 1500.0, 40,
				sqlmock.AnyArg(), sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		schedule := &models.Schedule{
			BusID:               uuid.New(),
			DepartureLocationID: uuid.New(),
			ArrivalLocationID:   uuid.New(),
			DepartureTime:       departure,
			ArrivalTime:         arrival,
			Price:               1500.0,
			AvailableSeats:      40,
		}
		err := repo.Create(schedule)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, schedule.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateSchedule(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewScheduleRepository(db)

	t.Run("Updates Only Provided Fields", func(t *testing.T) {
		scheduleID := uuid.New()
		seats := 25

		mock.ExpectExec(`UPDATE schedules`).
			WithArgs(seats, scheduleID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(scheduleID, &models.UpdateScheduleRequest{AvailableSeats: &seats})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
