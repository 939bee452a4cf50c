package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pellagroup/conveyance-api/models"
)

// Every booking occupies the same fixed one-hour UTC window; dropping a card
// on a day changes the date, never the time. There is no slot-level
// collision checking, so two bookings can share an office, day and hour.
const (
	SlotStartHour = 10
	SlotEndHour   = 11
)

// SlotWindow returns the fixed start/end timestamps for the given dateKey.
func SlotWindow(dateKey string) (start, end string) {
	return fmt.Sprintf("%sT%02d:00:00Z", dateKey, SlotStartHour),
		fmt.Sprintf("%sT%02d:00:00Z", dateKey, SlotEndHour)
}

// Gateway persists a booking reassignment against the booking API.
type Gateway interface {
	UpdateBooking(ctx context.Context, bookingID string, upd models.BookingUpdate) error
}

// RESTGateway calls PUT {base}/bookings/{id} on the upstream booking API.
type RESTGateway struct {
	BaseURL string
	Client  *http.Client
}

// NewRESTGateway returns a gateway against the given base URL
func NewRESTGateway(baseURL string) *RESTGateway {
	return &RESTGateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// UpdateBooking sends the reassignment payload; any non-2xx response or
// transport error counts as a failure
func (g *RESTGateway) UpdateBooking(ctx context.Context, bookingID string, upd models.BookingUpdate) error {
	body, err := json.Marshal(upd)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, fmt.Sprintf("%s/bookings/%s", g.BaseURL, bookingID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("booking api returned %s", resp.Status)
	}
	return nil
}
