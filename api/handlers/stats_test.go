package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pellagroup/conveyance-api/api/handlers"
	"github.com/pellagroup/conveyance-api/databases"
	mocksdb "github.com/pellagroup/conveyance-api/databases/mocks"
	"github.com/pellagroup/conveyance-api/models"
)

func statsFixture(t *testing.T) (handlers.Stats, *mocksdb.CollectionHelper, *mocksdb.CollectionHelper) {
	t.Helper()

	db := &mocksdb.DatabaseHelper{}
	casesConn := &mocksdb.CollectionHelper{}
	bookingsConn := &mocksdb.CollectionHelper{}

	db.On("Collection", "cases").Return(casesConn)
	db.On("Collection", "bookings").Return(bookingsConn)

	st := handlers.Stats{
		CDB: databases.NewCaseDatabase(db),
		BDB: databases.NewBookingDatabase(db),
	}
	return st, casesConn, bookingsConn
}

func TestStats_DashboardStatsHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	st, casesConn, bookingsConn := statsFixture(t)

	casesConn.On("CountDocuments", mock.Anything, bson.D{}).Return(int64(12), nil)
	casesConn.On("CountDocuments", mock.Anything, bson.M{"case.status": "ready"}).Return(int64(4), nil)
	bookingsConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(7), nil)

	cursor := &mocksdb.CursorHelper{}
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	bookingsConn.On("Aggregate", mock.Anything, mock.Anything).Return(cursor, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.DashboardStatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"casesTotal": 12, "casesReady": 4, "bookingsUpcoming": 7, "bookingsByOffice": []}`, rr.Body.String())
	bookingsConn.AssertCalled(t, "Aggregate", mock.Anything, mock.Anything)
}

func TestStats_DashboardStatsHandlerCountError(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	st, casesConn, _ := statsFixture(t)
	casesConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.DashboardStatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to count cases", Error: "mocked-error"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}

func TestStats_DashboardStatsHandlerAggregateError(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/stats", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	st, casesConn, bookingsConn := statsFixture(t)

	casesConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(2), nil)
	bookingsConn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)
	bookingsConn.On("Aggregate", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.DashboardStatsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to aggregate bookings by office", Error: "mocked-error"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}
