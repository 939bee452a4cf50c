package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/api/handlers"
	"github.com/pellagroup/conveyance-api/models"
)

// stubGateway lets each test decide whether persistence succeeds.
type stubGateway struct {
	err   error
	calls int
}

func (g *stubGateway) UpdateBooking(ctx context.Context, bookingID string, upd models.BookingUpdate) error {
	g.calls++
	return g.err
}

func calendarFixture(t *testing.T, gw calendar.Gateway) (handlers.Calendar, primitive.ObjectID) {
	t.Helper()

	clock := func() time.Time {
		return time.Date(2024, time.July, 10, 9, 30, 0, 0, time.UTC)
	}
	ctrl := calendar.NewWithClock(gw, nil, clock)

	id := primitive.NewObjectID()
	ctrl.SetBookings([]models.Booking{
		{
			ID: id,
			Details: models.BookingDetails{
				CaseID:          "5fc51f58c72ff10004dca382",
				TrusteeOfficeID: "office-9",
				RepName:         "Karin Ek",
				Slot: models.BookingSlot{
					Start: "2024-07-10T10:00:00Z",
					End:   "2024-07-10T11:00:00Z",
				},
				Case: models.CaseDetails{
					Parties: []models.Party{
						{Role: models.PartyRoleBuyer, Members: []models.PartyMember{{Name: "Anna Andersson"}}},
					},
				},
			},
		},
	})
	return handlers.Calendar{Controller: ctrl}, id
}

func TestCalendar_ViewHandler(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	req, err := http.NewRequest("GET", "/api/v1/calendar", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.ViewHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var view calendar.View
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "July 2024", view.Title)
	assert.Equal(t, calendar.ViewMonth, view.ViewMode)
	assert.Contains(t, rr.Body.String(), "Buyer: Anna Andersson")
}

func TestCalendar_NextMonthHandlerWrapsYear(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	// July -> December
	for i := 0; i < 5; i++ {
		h.Controller.NextMonth()
	}

	req, err := http.NewRequest("POST", "/api/v1/calendar/next", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.NextMonthHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var view calendar.View
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "January 2025", view.Title)
	assert.Equal(t, 2025, view.Year)
	assert.Equal(t, 0, view.Month)
}

func TestCalendar_SetViewModeHandlerInvalid(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	payload, _ := json.Marshal(map[string]string{"viewMode": "fortnight"})
	req, err := http.NewRequest("PUT", "/api/v1/calendar/view", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.SetViewModeHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "invalid view mode", Error: `invalid view mode "fortnight"`}}
	eb, _ := json.Marshal(expected)
	if rr.Body.String() != string(eb) {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestCalendar_SetViewModeHandlerWeek(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	payload, _ := json.Marshal(map[string]string{"viewMode": "week"})
	req, err := http.NewRequest("PUT", "/api/v1/calendar/view", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.SetViewModeHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var view calendar.View
	if err := json.Unmarshal(rr.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, calendar.ViewWeek, view.ViewMode)
	assert.Len(t, view.Cells, 7)
	// the week always contains the injected "now", 2024-07-10
	assert.Equal(t, "2024-07-08", view.Cells[0].DateKey)
}

func TestCalendar_SetDefaultsHandler(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	payload, _ := json.Marshal(map[string]string{"trusteeOfficeId": "office-2", "repName": "Lars Berg"})
	req, err := http.NewRequest("PUT", "/api/v1/calendar/defaults", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.SetDefaultsHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.Contains(t, rr.Body.String(), "Calendar defaults updated successfully")

	view := h.Controller.View()
	assert.Equal(t, "office-2", view.SelectedOffice)
	assert.Equal(t, "Lars Berg", view.RepName)
}

func TestCalendar_RescheduleHandlerSuccess(t *testing.T) {
	gw := &stubGateway{}
	h, id := calendarFixture(t, gw)

	payload, _ := json.Marshal(map[string]string{"bookingId": id.Hex(), "dateKey": "2024-07-12"})
	req, err := http.NewRequest("POST", "/api/v1/calendar/reschedule", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.RescheduleHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	assert.Equal(t, 1, gw.calls)
	assert.Contains(t, rr.Body.String(), "2024-07-12T10:00:00Z")
	assert.Contains(t, rr.Body.String(), "2024-07-12T11:00:00Z")
}

func TestCalendar_RescheduleHandlerUnknownBooking(t *testing.T) {
	h, _ := calendarFixture(t, &stubGateway{})

	payload, _ := json.Marshal(map[string]string{"bookingId": primitive.NewObjectID().Hex(), "dateKey": "2024-07-12"})
	req, err := http.NewRequest("POST", "/api/v1/calendar/reschedule", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.RescheduleHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "unknown booking", Error: "unknown booking"}}
	eb, _ := json.Marshal(expected)
	if rr.Body.String() != string(eb) {
		t.Errorf("handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestCalendar_RescheduleHandlerInvalidDateKey(t *testing.T) {
	h, id := calendarFixture(t, &stubGateway{})

	payload, _ := json.Marshal(map[string]string{"bookingId": id.Hex(), "dateKey": "12/07/2024"})
	req, err := http.NewRequest("POST", "/api/v1/calendar/reschedule", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.RescheduleHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadRequest {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
	}
	assert.Contains(t, rr.Body.String(), "invalid date key")
}

func TestCalendar_RescheduleHandlerPersistenceFailure(t *testing.T) {
	gw := &stubGateway{err: errors.New("booking api returned 502 Bad Gateway")}
	h, id := calendarFixture(t, gw)

	payload, _ := json.Marshal(map[string]string{"bookingId": id.Hex(), "dateKey": "2024-07-12"})
	req, err := http.NewRequest("POST", "/api/v1/calendar/reschedule", bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(h.RescheduleHandler)

	handler.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusBadGateway {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadGateway)
	}
	assert.Contains(t, rr.Body.String(), "failed to persist reschedule")

	// the optimistic move was rolled back to the confirmed slot
	bookings := h.Controller.Bookings()
	assert.Equal(t, "2024-07-10T10:00:00Z", bookings[0].Details.Slot.Start)
}
