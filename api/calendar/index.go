package calendar

import (
	"time"

	"github.com/pellagroup/conveyance-api/models"
)

// Index maps a dateKey to the bookings occupying that day. It is derived
// state only: rebuilt in full from the authoritative booking collection and
// never treated as a source of truth itself.
type Index map[string][]models.Booking

// BuildIndex groups bookings by the date portion of their slot start.
// Bookings with a missing or unparseable start are silently dropped rather
// than surfaced as errors. Order within a bucket follows the input order.
func BuildIndex(bookings []models.Booking) Index {
	idx := make(Index, len(bookings))
	for _, b := range bookings {
		key, ok := slotDateKey(b)
		if !ok {
			continue
		}
		idx[key] = append(idx[key], b)
	}
	return idx
}

// slotDateKey truncates the RFC3339 slot start down to its YYYY-MM-DD
// prefix, checking that the prefix really is a calendar date.
func slotDateKey(b models.Booking) (string, bool) {
	s := b.Details.Slot.Start
	if len(s) < len(dateKeyLayout) {
		return "", false
	}
	key := s[:len(dateKeyLayout)]
	if _, err := time.Parse(dateKeyLayout, key); err != nil {
		return "", false
	}
	return key, true
}
