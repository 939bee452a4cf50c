package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

// Booking exported for testing purposes. The case database is needed to
// re-embed the case snapshot whenever a booking is created or reassigned.
type Booking struct {
	DB  databases.BookingDatabase
	CDB databases.CaseDatabase
}

// BookingHandler returns a paginated list of bookings
func (b Booking) BookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	Page = getPage(Page, r)

	dbResp, err := b.DB.FindPaginated(ctx, bson.D{}, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get bookings", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Booking{}
	}
	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// BookingByIDHandler returns a booking by ID
func (b Booking) BookingByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	bookingID := mux.Vars(r)["booking_id"]

	zap.S().Debugf("booking_id: %v", bookingID)

	bID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get booking by ID", http.StatusNotFound, w, err)
		return
	}

	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// BookingsByOfficeIDHandler returns all bookings for a trustee office
func (b Booking) BookingsByOfficeIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officeID := mux.Vars(r)["trustee_office_id"]

	zap.S().Debugf("trustee_office_id: %v", officeID)

	dbResp, err := b.DB.Find(ctx, bson.M{"booking.trusteeOfficeId": officeID})
	if err != nil {
		config.ErrorStatus("failed to get bookings by office ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Booking{}
	}
	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// BookingsByCaseIDHandler returns all bookings for a case
func (b Booking) BookingsByCaseIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	caseID := mux.Vars(r)["case_id"]

	zap.S().Debugf("case_id: %v", caseID)

	dbResp, err := b.DB.Find(ctx, bson.M{"booking.caseId": caseID})
	if err != nil {
		config.ErrorStatus("failed to get bookings by case ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Booking{}
	}
	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// CreateBookingHandler creates a booking and embeds the case snapshot
func (b Booking) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var upd models.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := validateSlot(upd.Start, upd.End); err != nil {
		config.ErrorStatus("invalid booking slot", http.StatusBadRequest, w, err)
		return
	}

	snapshot, err := b.caseSnapshot(ctx, upd.CaseID)
	if err != nil {
		config.ErrorStatus("failed to get case for booking", http.StatusNotFound, w, err)
		return
	}

	booking := models.Booking{
		ID: primitive.NewObjectID(),
		Details: models.BookingDetails{
			CaseID:          upd.CaseID,
			TrusteeOfficeID: upd.TrusteeOfficeID,
			RepName:         upd.RepName,
			Slot:            models.BookingSlot{Start: upd.Start, End: upd.End},
			Case:            snapshot,
			CreatedAt:       primitive.NewDateTimeFromTime(time.Now()),
		},
	}
	booking.Details.UpdatedAt = booking.Details.CreatedAt

	_, err = b.DB.InsertOne(ctx, booking)
	if err != nil {
		config.ErrorStatus("failed to create booking", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Booking created successfully",
		"id":      booking.ID.Hex(),
	})
}

// UpdateBookingHandler reassigns a booking. This is the endpoint the
// calendar gateway PUTs to when a card is dropped on a new day.
func (b Booking) UpdateBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	bookingID := mux.Vars(r)["booking_id"]

	bID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var upd models.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := validateSlot(upd.Start, upd.End); err != nil {
		config.ErrorStatus("invalid booking slot", http.StatusBadRequest, w, err)
		return
	}

	snapshot, err := b.caseSnapshot(ctx, upd.CaseID)
	if err != nil {
		config.ErrorStatus("failed to get case for booking", http.StatusNotFound, w, err)
		return
	}

	update := bson.M{
		"booking.caseId":          upd.CaseID,
		"booking.trusteeOfficeId": upd.TrusteeOfficeID,
		"booking.repName":         upd.RepName,
		"booking.slot.start":      upd.Start,
		"booking.slot.end":        upd.End,
		"booking.case":            snapshot,
		"booking.updatedAt":       primitive.NewDateTimeFromTime(time.Now()),
	}

	err = b.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update booking", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Booking updated successfully",
	})
}

// DeleteBookingHandler deletes a booking by ID
func (b Booking) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	bookingID := mux.Vars(r)["booking_id"]

	bID, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = b.DB.DeleteOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to delete booking", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Booking deleted successfully",
	})
}

// caseSnapshot loads the case details embedded on a booking for label
// rendering. An empty caseID yields an empty snapshot rather than an error.
func (b Booking) caseSnapshot(ctx context.Context, caseID string) (models.CaseDetails, error) {
	if caseID == "" {
		return models.CaseDetails{}, nil
	}
	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return models.CaseDetails{}, err
	}
	caseDoc, err := b.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		return models.CaseDetails{}, err
	}
	return caseDoc.Details, nil
}

func validateSlot(start, end string) error {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return fmt.Errorf("invalid start %q: %w", start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return fmt.Errorf("invalid end %q: %w", end, err)
	}
	if !e.After(s) {
		return fmt.Errorf("end %q is not after start %q", end, start)
	}
	return nil
}
