package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/databases"
	templates "github.com/pellagroup/conveyance-api/templates/html"
)

// Scheduler handles periodic background jobs: refreshing the calendar from
// the booking collection and mailing next-day booking reminders.
type Scheduler struct {
	cron     *cron.Cron
	BDB      databases.BookingDatabase
	BrokerDB databases.BrokerDatabase
	Calendar *calendar.Controller
}

// NewScheduler creates a new scheduler instance
func NewScheduler(bDB databases.BookingDatabase, brokerDB databases.BrokerDatabase, cal *calendar.Controller) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		BDB:      bDB,
		BrokerDB: brokerDB,
		Calendar: cal,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Refetch bookings every 15 minutes. This is the point where optimistic
	// calendar state re-converges with whatever the collection actually holds.
	_, err := s.cron.AddFunc("*/15 * * * *", s.refreshCalendar)
	if err != nil {
		zap.S().Errorw("failed to register calendar refresh job", "error", err)
	}

	// Mail next-day booking reminders daily at 6 AM UTC
	_, err = s.cron.AddFunc("0 6 * * *", s.sendBookingReminders)
	if err != nil {
		zap.S().Errorw("failed to register booking reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Booking scheduler started")

	// Seed the calendar right away instead of waiting for the first tick
	go s.refreshCalendar()
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Booking scheduler stopped")
}

// refreshCalendar loads the full booking collection and pushes it into the
// calendar controller
func (s *Scheduler) refreshCalendar() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bookings, err := s.BDB.Find(ctx, bson.D{})
	if err != nil {
		zap.S().Errorw("failed to refetch bookings for calendar", "error", err)
		return
	}

	s.Calendar.SetBookings(bookings)
	zap.S().Infow("Calendar refreshed from booking collection", "bookings", len(bookings))
}

// sendBookingReminders mails the broker on every booking scheduled for
// tomorrow
func (s *Scheduler) sendBookingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tomorrow := calendar.DateKey(time.Now().UTC().AddDate(0, 0, 1))

	bookings, err := s.BDB.Find(ctx, bson.M{
		"booking.slot.start": bson.M{"$regex": "^" + tomorrow},
	})
	if err != nil {
		zap.S().Errorw("failed to find bookings for reminders", "error", err)
		return
	}

	sent := 0
	for _, b := range bookings {
		email, name := s.brokerContact(ctx, b.Details.Case.BrokerID)
		if email == "" {
			zap.S().Warnw("no broker email for booking reminder", "bookingId", b.ID.Hex())
			continue
		}

		subject := fmt.Sprintf("Reminder: settlement booking tomorrow, case %s", b.Details.Case.CaseNumber)
		body := fmt.Sprintf("Hi %s,\n\nThis is a reminder that case %s (%s) has a settlement booking tomorrow at %s.\n\nRepresentative: %s",
			name, b.Details.Case.CaseNumber, b.Details.Case.Address, b.Details.Slot.Start, b.Details.RepName)

		if err := s.sendEmail(email, name, subject, templates.RenderGenericEmail(subject, body), body); err != nil {
			zap.S().Errorw("failed to send booking reminder", "error", err, "bookingId", b.ID.Hex())
			continue
		}
		sent++
	}

	zap.S().Infow("Booking reminders processed", "bookings", len(bookings), "sent", sent)
}

// brokerContact resolves the broker's email and display name
func (s *Scheduler) brokerContact(ctx context.Context, brokerID string) (email, name string) {
	if brokerID == "" {
		return "", ""
	}
	bID, err := primitive.ObjectIDFromHex(brokerID)
	if err != nil {
		return "", ""
	}
	broker, err := s.BrokerDB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil || broker.Details.Email == "" {
		return "", ""
	}
	return broker.Details.Email, broker.Details.FirstName + " " + broker.Details.LastName
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Pella Conveyance", "no-reply@pellagroup.se")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
