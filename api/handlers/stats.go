package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
)

// Stats exported for testing purposes
type Stats struct {
	CDB databases.CaseDatabase
	BDB databases.BookingDatabase
}

// officeBookingCount is one bucket of the bookings-per-office breakdown
type officeBookingCount struct {
	TrusteeOfficeID string `bson:"_id" json:"trusteeOfficeId"`
	Count           int64  `bson:"count" json:"count"`
}

// DashboardStatsHandler returns the figures shown on the admin dashboard:
// case totals, the size of the ready pool, upcoming bookings and the
// bookings-per-office breakdown
func (s Stats) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	casesTotal, err := s.CDB.CountDocuments(ctx, bson.D{})
	if err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}

	casesReady, err := s.CDB.CountDocuments(ctx, bson.M{"case.status": "ready"})
	if err != nil {
		config.ErrorStatus("failed to count ready cases", http.StatusInternalServerError, w, err)
		return
	}

	// Slot starts are RFC3339 strings, so a date-key prefix comparison
	// selects everything from today's midnight onwards.
	today := calendar.DateKey(time.Now().UTC())
	bookingsUpcoming, err := s.BDB.CountDocuments(ctx, bson.M{
		"booking.slot.start": bson.M{"$gte": today},
	})
	if err != nil {
		config.ErrorStatus("failed to count upcoming bookings", http.StatusInternalServerError, w, err)
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$booking.trusteeOfficeId",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := s.BDB.Aggregate(ctx, pipeline)
	if err != nil {
		config.ErrorStatus("failed to aggregate bookings by office", http.StatusInternalServerError, w, err)
		return
	}
	defer cursor.Close(ctx)

	var byOffice []officeBookingCount
	if err := cursor.All(ctx, &byOffice); err != nil {
		config.ErrorStatus("failed to decode bookings by office", http.StatusInternalServerError, w, err)
		return
	}
	if len(byOffice) == 0 {
		byOffice = []officeBookingCount{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"casesTotal":       casesTotal,
		"casesReady":       casesReady,
		"bookingsUpcoming": bookingsUpcoming,
		"bookingsByOffice": byOffice,
	})
}
