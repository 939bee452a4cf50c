package databases

// go generate: mockery --name BookingDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/models"
)

const bookingName = "bookings"

// BookingDatabase contains the methods to use with the booking database
type BookingDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Booking, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Booking, error)
	FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.Booking, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
	CountDocuments(context.Context, interface{}, ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error)
}

type bookingDatabase struct {
	db DatabaseHelper
}

// NewBookingDatabase initializes a new instance of booking database with the provided db connection
func NewBookingDatabase(db DatabaseHelper) BookingDatabase {
	return &bookingDatabase{
		db: db,
	}
}

func (c *bookingDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Booking, error) {
	booking := &models.Booking{}
	err := c.db.Collection(bookingName).FindOne(ctx, filter, opts...).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (c *bookingDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Booking, error) {
	var bookings []models.Booking
	curr, err := c.db.Collection(bookingName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &bookings)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *bookingDatabase) FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.Booking, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"_id": -1})
	return c.Find(ctx, filter, opts)
}

func (c *bookingDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(bookingName).InsertOne(ctx, document, opts...)
}

func (c *bookingDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(bookingName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *bookingDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(bookingName).DeleteOne(ctx, filter, opts...)
}

func (c *bookingDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(bookingName).CountDocuments(ctx, filter, opts...)
}

func (c *bookingDatabase) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error) {
	return c.db.Collection(bookingName).Aggregate(ctx, pipeline, opts...)
}
