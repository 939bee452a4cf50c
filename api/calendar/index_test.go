package calendar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/models"
)

func bookingOn(start string) models.Booking {
	return models.Booking{
		ID: primitive.NewObjectID(),
		Details: models.BookingDetails{
			Slot: models.BookingSlot{Start: start},
		},
	}
}

func TestBuildIndexGroupsByDate(t *testing.T) {
	b1 := bookingOn("2024-07-10T10:00:00Z")
	b2 := bookingOn("2024-07-10T10:00:00Z")
	b3 := bookingOn("2024-07-12T10:00:00Z")

	idx := calendar.BuildIndex([]models.Booking{b1, b2, b3})

	assert.Len(t, idx, 2)
	assert.Equal(t, []models.Booking{b1, b2}, idx["2024-07-10"])
	assert.Equal(t, []models.Booking{b3}, idx["2024-07-12"])
}

func TestBuildIndexDropsUnparseableStarts(t *testing.T) {
	good := bookingOn("2024-07-10T10:00:00Z")
	bookings := []models.Booking{
		good,
		bookingOn(""),
		bookingOn("10:00"),
		bookingOn("not-a-date-at-all"),
	}

	idx := calendar.BuildIndex(bookings)

	total := 0
	for _, bucket := range idx {
		total += len(bucket)
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, []models.Booking{good}, idx["2024-07-10"])
}

func TestBuildIndexFlattensToInput(t *testing.T) {
	bookings := []models.Booking{
		bookingOn("2024-07-01T10:00:00Z"),
		bookingOn("2024-07-01T10:00:00Z"),
		bookingOn("2024-07-02T10:00:00Z"),
		bookingOn("2024-07-31T10:00:00Z"),
	}

	idx := calendar.BuildIndex(bookings)

	total := 0
	for _, bucket := range idx {
		total += len(bucket)
	}
	if total != len(bookings) {
		t.Errorf("index lost bookings: got %v want %v", total, len(bookings))
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	assert.Empty(t, calendar.BuildIndex(nil))
}
