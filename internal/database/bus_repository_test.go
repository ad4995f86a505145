package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citytransit/bus-reservation-backend/internal/models"
)

func TestCreateBus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBusRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO buses`).
			WithArgs(sqlmock.AnyArg(), "NB-1234", 50, "Volvo 9400", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		bus := &models.Bus{PlateNumber: "NB-1234", Capacity: 50, Model: "Volvo 9400"}
		err := repo.Create(bus)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, bus.ID)
		assert.Equal(t, now, bus.CreatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO buses`).
			WithArgs(sqlmock.AnyArg(), "NB-1234", 50, "Volvo 9400", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(fmt.Errorf("database error"))

		bus := &models.Bus{PlateNumber: "NB-1234", Capacity: 50, Model: "Volvo 9400"}
		err := repo.Create(bus)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBusByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBusRepository(db)

	t.Run("Success", func(t *testing.T) {
		busID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM buses`).
			WithArgs(busID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "plate_number", "capacity", "model", "created_at", "updated_at",
			}).AddRow(busID, "NB-1234", 50, "Volvo 9400", now, now))

		bus, err := repo.GetByID(busID)
		require.NoError(t, err)
		assert.Equal(t, busID, bus.ID)
		assert.Equal(t, "NB-1234", bus.PlateNumber)
		assert.Equal(t, 50, bus.Capacity)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		busID := uuid.New()

		mock.ExpectQuery(`SELECT (.+) FROM buses`).
			WithArgs(busID).
			WillReturnError(sql.ErrNoRows)

		bus, err := repo.GetByID(busID)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, bus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBusByPlateNumber(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBusRepository(db)

	t.Run("Found", func(t *testing.T) {
		busID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM buses`).
			WithArgs("NB-1234").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "plate_number", "capacity", "model", "created_at", "updated_at",
			}).AddRow(busID, "NB-1234", 50, "Volvo 9400", now, now))

		bus, err := repo.GetByPlateNumber("NB-1234")
		require.NoError(t, err)
		require.NotNil(t, bus)
		assert.Equal(t, busID, bus.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Bus With Plate", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM buses`).
			WithArgs("NB-9999").
			WillReturnError(sql.ErrNoRows)

		bus, err := repo.GetByPlateNumber("NB-9999")
		require.NoError(t, err)
		assert.Nil(t, bus)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateBus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBusRepository(db)

	t.Run("Partial Update", func(t *testing.T) {
		busID := uuid.New()
		capacity := 45

		mock.ExpectExec(`UPDATE buses`).
			WithArgs(capacity, busID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(busID, &models.UpdateBusRequest{Capacity: &capacity})
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		busID := uuid.New()
		capacity := 45

		mock.ExpectExec(`UPDATE buses`).
			WithArgs(capacity, busID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(busID, &models.UpdateBusRequest{Capacity: &capacity})
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Fields", func(t *testing.T) {
		err := repo.Update(uuid.New(), &models.UpdateBusRequest{})
		assert.Error(t, err)
	})
}

func TestDeleteBus(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewBusRepository(db)

	t.Run("Success", func(t *testing.T) {
		busID := uuid.New()

		mock.ExpectExec(`DELETE FROM buses`).
			WithArgs(busID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(busID)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		busID := uuid.New()

		mock.ExpectExec(`DELETE FROM buses`).
			WithArgs(busID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(busID)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
