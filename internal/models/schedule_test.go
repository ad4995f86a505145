package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchedule() *Schedule {
	departure := time.Now().Add(24 * time.Hour)
	return &Schedule{
		ID:                  uuid.New(),
		BusID:               uuid.New(),
		DepartureLocationID: uuid.New(),
		ArrivalLocationID:   uuid.New(),
		DepartureTime:       departure,
		ArrivalTime:         departure.Add(4 * time.Hour),
		Price:               1500.0,
		AvailableSeats:      40,
	}
}

func TestValidateScheduleTimes(t *testing.T) {
	departure := time.Now()

	assert.NoError(t, ValidateScheduleTimes(departure, departure.Add(time.Minute)))

	err := ValidateScheduleTimes(departure, departure)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "arrival_time", ve.Field)

	err = ValidateScheduleTimes(departure, departure.Add(-time.Hour))
	assert.Error(t, err)
}

func TestUpdateScheduleRequestValidateAgainst(t *testing.T) {
	t.Run("Changing Only Arrival Checks Against Stored Departure", func(t *testing.T) {
		current := validSchedule()
		badArrival := current.DepartureTime.Add(-time.Hour)

		err := (&UpdateScheduleRequest{ArrivalTime: &badArrival}).ValidateAgainst(current)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "arrival_time", ve.Field)
	})

	t.Run("Changing Only Departure Checks Against Stored Arrival", func(t *testing.T) {
		current := validSchedule()
		badDeparture := current.ArrivalTime.Add(time.Hour)

		err := (&UpdateScheduleRequest{DepartureTime: &badDeparture}).ValidateAgainst(current)
		assert.Error(t, err)
	})

	t.Run("Changing One Endpoint Cannot Collapse The Route", func(t *testing.T) {
		current := validSchedule()
		sameAsDeparture := current.DepartureLocationID

		err := (&UpdateScheduleRequest{ArrivalLocationID: &sameAsDeparture}).ValidateAgainst(current)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "arrival_location", ve.Field)
	})

	t.Run("Consistent Partial Update Passes", func(t *testing.T) {
		current := validSchedule()
		price := 1750.0
		seats := 30

		err := (&UpdateScheduleRequest{Price: &price, AvailableSeats: &seats}).ValidateAgainst(current)
		assert.NoError(t, err)
	})

	t.Run("Negative Values Rejected", func(t *testing.T) {
		current := validSchedule()
		price := -1.0
		seats := -5

		assert.Error(t, (&UpdateScheduleRequest{Price: &price}).ValidateAgainst(current))
		assert.Error(t, (&UpdateScheduleRequest{AvailableSeats: &seats}).ValidateAgainst(current))
	})
}

func TestCreateScheduleRequestValidate(t *testing.T) {
	departure := time.Now().Add(24 * time.Hour)

	valid := CreateScheduleRequest{
		BusID:               uuid.New(),
		DepartureLocationID: uuid.New(),
		ArrivalLocationID:   uuid.New(),
		DepartureTime:       departure,
		ArrivalTime:         departure.Add(4 * time.Hour),
		Price:               1500.0,
		AvailableSeats:      40,
	}
	assert.NoError(t, valid.Validate())

	zeroSeats := valid
	zeroSeats.AvailableSeats = 0
	assert.Error(t, zeroSeats.Validate())

	negativePrice := valid
	negativePrice.Price = -10
	assert.Error(t, negativePrice.Validate())
}
