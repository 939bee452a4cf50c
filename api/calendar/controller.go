package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/models"
)

// View modes
const (
	ViewMonth = "month"
	ViewWeek  = "week"
)

// ErrUnknownBooking is returned when a reschedule names a booking id that is
// not part of the authoritative collection.
var ErrUnknownBooking = errors.New("unknown booking")

// RescheduleError wraps a failed persistence attempt. By the time the caller
// sees it the optimistic move has already been rolled back to the last
// confirmed date.
type RescheduleError struct {
	BookingID string
	DateKey   string
	Err       error
}

func (e *RescheduleError) Error() string {
	return fmt.Sprintf("reschedule booking %s to %s: %v", e.BookingID, e.DateKey, e.Err)
}

func (e *RescheduleError) Unwrap() error { return e.Err }

// Notifier delivers ephemeral toast-style notices to the operator. Delivery
// must never block the calendar.
type Notifier interface {
	Notify(level, message string)
}

// View is the composed render model for the current calendar state.
type View struct {
	Title          string     `json:"title,omitempty"`
	ViewMode       string     `json:"viewMode"`
	Year           int        `json:"year"`
	Month          int        `json:"month"`
	WeekdayHeaders []string   `json:"weekdayHeaders,omitempty"`
	Cells          []ViewCell `json:"cells"`
	SelectedOffice string     `json:"selectedOffice"`
	RepName        string     `json:"repName"`
}

// ViewCell is one rendered day with its resolved booking cards.
type ViewCell struct {
	Day     int    `json:"day"`
	DateKey string `json:"dateKey"`
	Cards   []Card `json:"cards"`
}

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Controller owns the calendar view state, the authoritative booking slice
// pushed in by its parent, and the derived date index. All state lives in
// memory only; nothing survives a restart.
type Controller struct {
	mu sync.Mutex

	now      func() time.Time
	gateway  Gateway
	notifier Notifier

	year     int
	month    int // 0-based
	viewMode string

	selectedOffice string
	repName        string

	bookings  []models.Booking
	index     Index
	pending   map[string]bool               // booking id -> persistence call in flight
	confirmed map[string]models.BookingSlot // booking id -> last server-confirmed slot
}

// New builds a Controller anchored on time.Now.
func New(gateway Gateway, notifier Notifier) *Controller {
	return NewWithClock(gateway, notifier, time.Now)
}

// NewWithClock builds a Controller with an injected clock so "now" is
// substitutable in tests.
func NewWithClock(gateway Gateway, notifier Notifier, now func() time.Time) *Controller {
	t := now().UTC()
	return &Controller{
		now:       now,
		gateway:   gateway,
		notifier:  notifier,
		year:      t.Year(),
		month:     int(t.Month()) - 1,
		viewMode:  ViewMonth,
		index:     Index{},
		pending:   map[string]bool{},
		confirmed: map[string]models.BookingSlot{},
	}
}

// SetBookings replaces the authoritative booking collection and rebuilds the
// derived index. Pending flags are discarded: a full refetch is the point
// where optimistic state re-converges with server truth.
func (c *Controller) SetBookings(bookings []models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bookings = append([]models.Booking(nil), bookings...)
	c.index = BuildIndex(c.bookings)
	c.pending = make(map[string]bool, len(bookings))
	c.confirmed = make(map[string]models.BookingSlot, len(bookings))
	for _, b := range c.bookings {
		if _, ok := slotDateKey(b); ok {
			c.confirmed[b.ID.Hex()] = b.Details.Slot
		}
	}
}

// PrevMonth steps the month view back one month, wrapping the year below
// January. Month navigation has no effect on the week view.
func (c *Controller) PrevMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.month--
	if c.month < 0 {
		c.month = 11
		c.year--
	}
}

// NextMonth steps the month view forward one month, wrapping the year above
// December.
func (c *Controller) NextMonth() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.month++
	if c.month > 11 {
		c.month = 0
		c.year++
	}
}

// SetViewMode switches between month and week view. Switching to week view
// never freezes the navigated month; the week always contains "now".
func (c *Controller) SetViewMode(mode string) error {
	if mode != ViewMonth && mode != ViewWeek {
		return fmt.Errorf("invalid view mode %q", mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = mode
	return nil
}

// SetDefaults stores the office and rep applied to bookings that arrive on
// the calendar without one.
func (c *Controller) SetDefaults(trusteeOfficeID, repName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selectedOffice = trusteeOfficeID
	c.repName = repName
}

// View renders the current calendar state. The title and weekday headers
// only exist in month view.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		ViewMode:       c.viewMode,
		Year:           c.year,
		Month:          c.month,
		SelectedOffice: c.selectedOffice,
		RepName:        c.repName,
	}

	var cells []Cell
	if c.viewMode == ViewWeek {
		cells = WeekCells(c.now())
	} else {
		v.Title = fmt.Sprintf("%s %d", time.Month(c.month+1), c.year)
		v.WeekdayHeaders = weekdayHeaders
		cells = MonthCells(c.year, c.month)
	}

	v.Cells = make([]ViewCell, 0, len(cells))
	for _, cell := range cells {
		vc := ViewCell{Day: cell.Day, DateKey: cell.DateKey}
		if cell.DateKey != "" {
			for _, b := range c.index[cell.DateKey] {
				id := b.ID.Hex()
				vc.Cards = append(vc.Cards, Card{
					BookingID:       id,
					CaseID:          b.Details.CaseID,
					TrusteeOfficeID: b.Details.TrusteeOfficeID,
					RepName:         b.Details.RepName,
					Label:           Label(b),
					Pending:         c.pending[id],
				})
			}
		}
		v.Cells = append(v.Cells, vc)
	}
	return v
}

// Bookings returns a copy of the authoritative collection.
func (c *Controller) Bookings() []models.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Booking(nil), c.bookings...)
}

// Reschedule is the command a card drop adapts to: move the booking to the
// given dateKey optimistically, then persist through the gateway. The local
// move happens synchronously so the UI reflects the drop immediately; the
// gateway call runs outside the lock so further drops stay responsive. Two
// rapid reschedules of the same booking are last-write-wins with no ordering
// guarantee between the in-flight requests.
func (c *Controller) Reschedule(ctx context.Context, bookingID, dateKey string) (models.Booking, error) {
	if _, err := time.Parse(dateKeyLayout, dateKey); err != nil {
		return models.Booking{}, &RescheduleError{BookingID: bookingID, DateKey: dateKey, Err: err}
	}

	c.mu.Lock()
	b, ok := c.findLocked(bookingID)
	if !ok {
		c.mu.Unlock()
		return models.Booking{}, ErrUnknownBooking
	}

	if b.Details.TrusteeOfficeID == "" {
		b.Details.TrusteeOfficeID = c.selectedOffice
	}
	if b.Details.RepName == "" {
		b.Details.RepName = c.repName
	}
	b.Details.Slot.Start, b.Details.Slot.End = SlotWindow(dateKey)

	// Optimistic reindex: replacing the booking and rebuilding the whole
	// index under the lock keeps the move atomic for any renderer.
	c.applyLocked(b)
	c.pending[bookingID] = true

	upd := models.BookingUpdate{
		CaseID:          b.Details.CaseID,
		TrusteeOfficeID: b.Details.TrusteeOfficeID,
		Start:           b.Details.Slot.Start,
		End:             b.Details.Slot.End,
		RepName:         b.Details.RepName,
	}
	c.mu.Unlock()

	err := c.gateway.UpdateBooking(ctx, bookingID, upd)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, bookingID)

	if err != nil {
		zap.S().Errorw("failed to persist booking reschedule",
			"bookingID", bookingID,
			"dateKey", dateKey,
			"error", err,
		)
		c.revertLocked(bookingID)
		c.notify("error", fmt.Sprintf("Could not move booking to %s", dateKey))
		return models.Booking{}, &RescheduleError{BookingID: bookingID, DateKey: dateKey, Err: err}
	}

	cur, ok := c.findLocked(bookingID)
	if !ok {
		// A refetch replaced the collection while the call was in flight.
		// The new collection already reflects server truth, so there is
		// nothing to confirm; report the state that was persisted.
		return b, nil
	}
	c.confirmed[bookingID] = cur.Details.Slot
	return cur, nil
}

// findLocked returns a copy of the booking with the given hex id.
func (c *Controller) findLocked(bookingID string) (models.Booking, bool) {
	for _, b := range c.bookings {
		if b.ID.Hex() == bookingID {
			return b, true
		}
	}
	return models.Booking{}, false
}

// applyLocked replaces the booking in the authoritative slice and rebuilds
// the index.
func (c *Controller) applyLocked(b models.Booking) {
	for i := range c.bookings {
		if c.bookings[i].ID == b.ID {
			c.bookings[i] = b
			break
		}
	}
	c.index = BuildIndex(c.bookings)
}

// revertLocked moves a booking back to its last server-confirmed slot after
// a failed persistence call.
func (c *Controller) revertLocked(bookingID string) {
	prev, ok := c.confirmed[bookingID]
	if !ok {
		return
	}
	b, found := c.findLocked(bookingID)
	if !found {
		return
	}
	b.Details.Slot = prev
	c.applyLocked(b)
}

func (c *Controller) notify(level, message string) {
	if c.notifier != nil {
		c.notifier.Notify(level, message)
	}
}
