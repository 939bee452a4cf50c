package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/api/calendar"
	"github.com/pellagroup/conveyance-api/api/scheduler"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	DB        databases.CollectionHelper
	Config    config.Config
	Calendar  *calendar.Controller
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	hub := NewNotificationHub()
	if a.Calendar == nil {
		a.Calendar = calendar.New(calendar.NewRESTGateway(a.Config.BookingAPIURL), hub)
	}

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	c := Case{DB: databases.NewCaseDatabase(a.dbHelper)}
	br := Broker{DB: databases.NewBrokerDatabase(a.dbHelper)}
	o := Organization{DB: databases.NewOrganizationDatabase(a.dbHelper)}
	t := TrusteeOffice{DB: databases.NewTrusteeOfficeDatabase(a.dbHelper)}
	d := Document{DB: databases.NewDocumentDatabase(a.dbHelper)}
	bk := Booking{DB: databases.NewBookingDatabase(a.dbHelper), CDB: databases.NewCaseDatabase(a.dbHelper)}
	n := Notification{DB: databases.NewNotificationDatabase(a.dbHelper), Hub: hub}
	inv := Invoice{DB: databases.NewCaseDatabase(a.dbHelper)}
	st := Stats{CDB: databases.NewCaseDatabase(a.dbHelper), BDB: databases.NewBookingDatabase(a.dbHelper)}
	cal := Calendar{Controller: a.Calendar}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")
	apiCreate.Handle("/auth/admin-token", http.HandlerFunc(u.AdminTokenHandler)).Methods("POST")

	apiCreate.Handle("/user/create-user", api.AdminMiddleware(http.HandlerFunc(u.UserCreateHandler))).Methods("POST")
	apiCreate.Handle("/user/check-user", http.HandlerFunc(u.UserCheckEmailHandler)).Methods("POST")
	apiCreate.Handle("/user/{user_id}", api.Middleware(http.HandlerFunc(u.UserHandler))).Methods("GET")

	apiCreate.Handle("/case", api.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(c.UpdateCaseHandler))).Methods("PATCH")
	apiCreate.Handle("/case/{case_id}", api.Middleware(http.HandlerFunc(c.DeleteCaseHandler))).Methods("DELETE")
	apiCreate.Handle("/case/{case_id}/documents", api.Middleware(http.HandlerFunc(d.DocumentsByCaseIDHandler))).Methods("GET")
	apiCreate.Handle("/case/{case_id}/bookings", api.Middleware(http.HandlerFunc(bk.BookingsByCaseIDHandler))).Methods("GET")
	apiCreate.Handle("/case/{case_id}/invoice/checkout", api.Middleware(http.HandlerFunc(inv.CreateCheckoutSessionHandler))).Methods("POST")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CaseHandler))).Methods("GET")
	apiCreate.Handle("/cases/ready", api.Middleware(http.HandlerFunc(c.ReadyCasesHandler))).Methods("GET")
	apiCreate.Handle("/cases/search", api.Middleware(http.HandlerFunc(c.CasesByPartySearchHandler))).Methods("GET")

	apiCreate.Handle("/stats", api.Middleware(http.HandlerFunc(st.DashboardStatsHandler))).Methods("GET")

	apiCreate.Handle("/broker", api.Middleware(http.HandlerFunc(br.CreateBrokerHandler))).Methods("POST")
	apiCreate.Handle("/broker/{broker_id}", api.Middleware(http.HandlerFunc(br.BrokerByIDHandler))).Methods("GET")
	apiCreate.Handle("/broker/{broker_id}", api.Middleware(http.HandlerFunc(br.UpdateBrokerHandler))).Methods("PATCH")
	apiCreate.Handle("/broker/{broker_id}", api.Middleware(http.HandlerFunc(br.DeleteBrokerHandler))).Methods("DELETE")
	apiCreate.Handle("/brokers", api.Middleware(http.HandlerFunc(br.BrokerHandler))).Methods("GET")
	apiCreate.Handle("/brokers/organization/{organization_id}", api.Middleware(http.HandlerFunc(br.BrokersByOrganizationIDHandler))).Methods("GET")

	apiCreate.Handle("/organization", api.Middleware(http.HandlerFunc(o.CreateOrganizationHandler))).Methods("POST")
	apiCreate.Handle("/organization/{organization_id}", api.Middleware(http.HandlerFunc(o.OrganizationByIDHandler))).Methods("GET")
	apiCreate.Handle("/organization/{organization_id}", api.Middleware(http.HandlerFunc(o.UpdateOrganizationHandler))).Methods("PATCH")
	apiCreate.Handle("/organization/{organization_id}", api.AdminMiddleware(http.HandlerFunc(o.DeleteOrganizationHandler))).Methods("DELETE")
	apiCreate.Handle("/organizations", api.Middleware(http.HandlerFunc(o.OrganizationHandler))).Methods("GET")

	apiCreate.Handle("/trustee-office", api.Middleware(http.HandlerFunc(t.CreateTrusteeOfficeHandler))).Methods("POST")
	apiCreate.Handle("/trustee-office/{trustee_office_id}", api.Middleware(http.HandlerFunc(t.TrusteeOfficeByIDHandler))).Methods("GET")
	apiCreate.Handle("/trustee-office/{trustee_office_id}", api.Middleware(http.HandlerFunc(t.UpdateTrusteeOfficeHandler))).Methods("PATCH")
	apiCreate.Handle("/trustee-office/{trustee_office_id}", api.AdminMiddleware(http.HandlerFunc(t.DeleteTrusteeOfficeHandler))).Methods("DELETE")
	apiCreate.Handle("/trustee-office/{trustee_office_id}/bookings", api.Middleware(http.HandlerFunc(bk.BookingsByOfficeIDHandler))).Methods("GET")
	apiCreate.Handle("/trustee-offices", api.Middleware(http.HandlerFunc(t.TrusteeOfficeHandler))).Methods("GET")

	apiCreate.Handle("/document", api.Middleware(http.HandlerFunc(d.CreateDocumentHandler))).Methods("POST")
	apiCreate.Handle("/document/{document_id}", api.Middleware(http.HandlerFunc(d.DeleteDocumentHandler))).Methods("DELETE")
	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/bookings", api.Middleware(http.HandlerFunc(bk.BookingHandler))).Methods("GET")
	apiCreate.Handle("/bookings", api.Middleware(http.HandlerFunc(bk.CreateBookingHandler))).Methods("POST")
	apiCreate.Handle("/bookings/{booking_id}", api.Middleware(http.HandlerFunc(bk.BookingByIDHandler))).Methods("GET")
	apiCreate.Handle("/bookings/{booking_id}", api.Middleware(http.HandlerFunc(bk.UpdateBookingHandler))).Methods("PUT")
	apiCreate.Handle("/bookings/{booking_id}", api.Middleware(http.HandlerFunc(bk.DeleteBookingHandler))).Methods("DELETE")

	apiCreate.Handle("/calendar", api.Middleware(http.HandlerFunc(cal.ViewHandler))).Methods("GET")
	apiCreate.Handle("/calendar/prev", api.Middleware(http.HandlerFunc(cal.PrevMonthHandler))).Methods("POST")
	apiCreate.Handle("/calendar/next", api.Middleware(http.HandlerFunc(cal.NextMonthHandler))).Methods("POST")
	apiCreate.Handle("/calendar/view", api.Middleware(http.HandlerFunc(cal.SetViewModeHandler))).Methods("PUT")
	apiCreate.Handle("/calendar/defaults", api.Middleware(http.HandlerFunc(cal.SetDefaultsHandler))).Methods("PUT")
	apiCreate.Handle("/calendar/reschedule", api.Middleware(http.HandlerFunc(cal.RescheduleHandler))).Methods("POST")

	apiCreate.Handle("/users/{user_id}/notifications", api.Middleware(http.HandlerFunc(n.GetUserNotificationsHandler))).Methods("GET")
	apiCreate.Handle("/users/notifications", api.Middleware(http.HandlerFunc(n.CreateNotificationHandler))).Methods("POST")
	apiCreate.Handle("/users/{user_id}/notifications/{notification_id}/read", api.Middleware(http.HandlerFunc(n.MarkNotificationAsReadHandler))).Methods("PUT")
	apiCreate.Handle("/users/{user_id}/notifications/read-all", api.Middleware(http.HandlerFunc(n.MarkAllNotificationsAsReadHandler))).Methods("PUT")
	apiCreate.Handle("/users/{user_id}/notifications/{notification_id}", api.Middleware(http.HandlerFunc(n.DeleteNotificationHandler))).Methods("DELETE")

	apiCreate.Handle("/success", http.HandlerFunc(inv.handleSuccessRedirect)).Methods("GET")
	apiCreate.Handle("/cancel", http.HandlerFunc(inv.handleCancelRedirect)).Methods("GET")

	r.HandleFunc("/ws/notifications", hub.HandleWebSocket)

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("conveyance-api has connected to the database")

	// initialize stripe
	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		return fmt.Errorf("stripe secret key is not set")
	}
	stripe.Key = stripeKey

	// initialize api router
	a.initializeRoutes()

	// background jobs: booking refetch into the calendar + reminder emails
	a.Scheduler = scheduler.NewScheduler(
		databases.NewBookingDatabase(a.dbHelper),
		databases.NewBrokerDatabase(a.dbHelper),
		a.Calendar,
	)
	a.Scheduler.Start()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
