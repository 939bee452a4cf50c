package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pellagroup/conveyance-api/api/handlers"
	"github.com/pellagroup/conveyance-api/databases"
	mocksdb "github.com/pellagroup/conveyance-api/databases/mocks"
	"github.com/pellagroup/conveyance-api/models"
)

func TestBooking_BookingByIDHandlerBadHex(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/bookings/nope", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"booking_id": "nope"})
	req.Header.Set("Authorization", "Bearer abc123")

	b := handlers.Booking{DB: databases.NewBookingDatabase(&mocksdb.DatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.BookingByIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get objectID from Hex", Error: "the provided hex string is not a valid ObjectID"}}
	eb, _ := json.Marshal(expected)
	if rr.Body.String() != string(eb) {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestBooking_BookingsByOfficeIDHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/trustee-office/office-9/bookings", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"trustee_office_id": "office-9"})
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursor databases.CursorHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	cursor = &mocksdb.CursorHelper{}

	cursor.(*mocksdb.CursorHelper).On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Booking)
		*arg = []models.Booking{
			{Details: models.BookingDetails{TrusteeOfficeID: "office-9", RepName: "Karin Ek"}},
		}
	})
	cursor.(*mocksdb.CursorHelper).On("Close", mock.Anything).Return(nil)
	conn.(*mocksdb.CollectionHelper).On("Find", mock.Anything, mock.Anything).Return(cursor, nil)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	b := handlers.Booking{DB: databases.NewBookingDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.BookingsByOfficeIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.Contains(t, rr.Body.String(), "Karin Ek")
}

func TestBooking_BookingsByOfficeIDHandlerFindError(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/trustee-office/office-9/bookings", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"trustee_office_id": "office-9"})
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}

	conn.(*mocksdb.CollectionHelper).On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	b := handlers.Booking{DB: databases.NewBookingDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.BookingsByOfficeIDHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusNotFound)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to get bookings by office ID", Error: "mocked-error"}}
	eb, _ := json.Marshal(expected)
	if rr.Body.String() != string(eb) {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestBooking_CreateBookingHandlerInvalidSlot(t *testing.T) {
	body := models.BookingUpdate{
		CaseID:          "",
		TrusteeOfficeID: "office-9",
		Start:           "2024-07-12T11:00:00Z",
		End:             "2024-07-12T10:00:00Z",
		RepName:         "Karin Ek",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	b := handlers.Booking{
		DB:  databases.NewBookingDatabase(&mocksdb.DatabaseHelper{}),
		CDB: databases.NewCaseDatabase(&mocksdb.DatabaseHelper{}),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.CreateBookingHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}
	assert.Contains(t, rr.Body.String(), "invalid booking slot")
}

func TestBooking_CreateBookingHandlerSuccess(t *testing.T) {
	body := models.BookingUpdate{
		CaseID:          "5fc51f58c72ff10004dca382",
		TrusteeOfficeID: "office-9",
		Start:           "2024-07-12T10:00:00Z",
		End:             "2024-07-12T11:00:00Z",
		RepName:         "Karin Ek",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", "/api/v1/bookings", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	var bookingDB databases.DatabaseHelper
	var bookingConn databases.CollectionHelper
	bookingDB = &mocksdb.DatabaseHelper{}
	bookingConn = &mocksdb.CollectionHelper{}
	bookingConn.(*mocksdb.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	bookingDB.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(bookingConn)

	var caseDB databases.DatabaseHelper
	var caseConn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper
	caseDB = &mocksdb.DatabaseHelper{}
	caseConn = &mocksdb.CollectionHelper{}
	singleResultHelper = &mocksdb.SingleResultHelper{}
	singleResultHelper.(*mocksdb.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Case)
		(*arg).Details.CaseNumber = "K-2024-0042"
		(*arg).Details.Parties = []models.Party{
			{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: "Anna Andersson"}}},
		}
	})
	caseConn.(*mocksdb.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	caseDB.(*mocksdb.DatabaseHelper).On("Collection", "cases").Return(caseConn)

	b := handlers.Booking{
		DB:  databases.NewBookingDatabase(bookingDB),
		CDB: databases.NewCaseDatabase(caseDB),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.CreateBookingHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}
	assert.Contains(t, rr.Body.String(), "Booking created successfully")
}

func TestBooking_UpdateBookingHandlerSuccess(t *testing.T) {
	body := models.BookingUpdate{
		CaseID:          "",
		TrusteeOfficeID: "office-9",
		Start:           "2024-07-12T10:00:00Z",
		End:             "2024-07-12T11:00:00Z",
		RepName:         "Karin Ek",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequest("PUT", "/api/v1/bookings/5fc51f58c72ff10004dca111", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"booking_id": "5fc51f58c72ff10004dca111"})
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}

	conn.(*mocksdb.CollectionHelper).On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	// empty caseId skips the case lookup, so the case database stays untouched
	b := handlers.Booking{
		DB:  databases.NewBookingDatabase(db),
		CDB: databases.NewCaseDatabase(&mocksdb.DatabaseHelper{}),
	}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.UpdateBookingHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.Contains(t, rr.Body.String(), "Booking updated successfully")
}

func TestBooking_DeleteBookingHandlerDBError(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/bookings/5fc51f58c72ff10004dca111", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"booking_id": "5fc51f58c72ff10004dca111"})
	req.Header.Set("Authorization", "Bearer abc123")

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}

	conn.(*mocksdb.CollectionHelper).On("DeleteOne", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	b := handlers.Booking{DB: databases.NewBookingDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(b.DeleteBookingHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to delete booking", Error: "mocked-error"}}
	eb, _ := json.Marshal(expected)
	if rr.Body.String() != string(eb) {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}
