package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/config"
)

// Calendar adapts HTTP requests onto the calendar controller
type Calendar struct {
	Controller *calendar.Controller
}

// rescheduleRequest is the drop payload posted by the frontend
type rescheduleRequest struct {
	BookingID string `json:"bookingId"`
	DateKey   string `json:"dateKey"`
}

type viewModeRequest struct {
	ViewMode string `json:"viewMode"`
}

type defaultsRequest struct {
	TrusteeOfficeID string `json:"trusteeOfficeId"`
	RepName         string `json:"repName"`
}

// ViewHandler renders the current calendar view
func (c Calendar) ViewHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(c.Controller.View())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PrevMonthHandler steps the month view back and returns the new view
func (c Calendar) PrevMonthHandler(w http.ResponseWriter, r *http.Request) {
	c.Controller.PrevMonth()
	c.ViewHandler(w, r)
}

// NextMonthHandler steps the month view forward and returns the new view
func (c Calendar) NextMonthHandler(w http.ResponseWriter, r *http.Request) {
	c.Controller.NextMonth()
	c.ViewHandler(w, r)
}

// SetViewModeHandler switches between month and week view
func (c Calendar) SetViewModeHandler(w http.ResponseWriter, r *http.Request) {
	var req viewModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := c.Controller.SetViewMode(req.ViewMode); err != nil {
		config.ErrorStatus("invalid view mode", http.StatusBadRequest, w, err)
		return
	}
	c.ViewHandler(w, r)
}

// SetDefaultsHandler stores the office and rep applied to bookings dropped
// on the calendar without one
func (c Calendar) SetDefaultsHandler(w http.ResponseWriter, r *http.Request) {
	var req defaultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	c.Controller.SetDefaults(req.TrusteeOfficeID, req.RepName)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Calendar defaults updated successfully",
	})
}

// RescheduleHandler moves a booking to a new day. By the time a failure is
// reported here, the optimistic move has already been rolled back and a
// notification broadcast.
func (c Calendar) RescheduleHandler(w http.ResponseWriter, r *http.Request) {
	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	booking, err := c.Controller.Reschedule(r.Context(), req.BookingID, req.DateKey)
	if err != nil {
		if errors.Is(err, calendar.ErrUnknownBooking) {
			config.ErrorStatus("unknown booking", http.StatusBadRequest, w, err)
			return
		}
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) {
			config.ErrorStatus("invalid date key", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("failed to persist reschedule", http.StatusBadGateway, w, err)
		return
	}

	b, err := json.Marshal(booking)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
