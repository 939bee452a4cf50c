package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/databases"
	mocksdb "github.com/pellagroup/conveyance-api/databases/mocks"
	"github.com/pellagroup/conveyance-api/models"
)

func TestBookingDatabase_FindOne(t *testing.T) {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	singleResultHelper = &mocksdb.SingleResultHelper{}

	singleResultHelper.(*mocksdb.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Booking)
		(*arg).Details.RepName = "Karin Ek"
	})
	conn.(*mocksdb.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	bookingDB := databases.NewBookingDatabase(db)
	booking, err := bookingDB.FindOne(context.Background(), bson.M{})

	assert.NoError(t, err)
	assert.Equal(t, "Karin Ek", booking.Details.RepName)
}

func TestBookingDatabase_FindOneDecodeError(t *testing.T) {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	singleResultHelper = &mocksdb.SingleResultHelper{}

	singleResultHelper.(*mocksdb.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.(*mocksdb.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	bookingDB := databases.NewBookingDatabase(db)
	booking, err := bookingDB.FindOne(context.Background(), bson.M{})

	assert.Nil(t, booking)
	assert.EqualError(t, err, "mongo: no documents in result")
}

func TestBookingDatabase_Find(t *testing.T) {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursor databases.CursorHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	cursor = &mocksdb.CursorHelper{}

	cursor.(*mocksdb.CursorHelper).On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Booking)
		*arg = []models.Booking{
			{Details: models.BookingDetails{TrusteeOfficeID: "office-9"}},
			{Details: models.BookingDetails{TrusteeOfficeID: "office-9"}},
		}
	})
	cursor.(*mocksdb.CursorHelper).On("Close", mock.Anything).Return(nil)
	conn.(*mocksdb.CollectionHelper).On("Find", mock.Anything, mock.Anything).Return(cursor, nil)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	bookingDB := databases.NewBookingDatabase(db)
	bookings, err := bookingDB.Find(context.Background(), bson.M{"booking.trusteeOfficeId": "office-9"})

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestBookingDatabase_FindPaginatedPassesSortedOptions(t *testing.T) {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursor databases.CursorHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}
	cursor = &mocksdb.CursorHelper{}

	cursor.(*mocksdb.CursorHelper).On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.(*mocksdb.CursorHelper).On("Close", mock.Anything).Return(nil)
	conn.(*mocksdb.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.MatchedBy(func(opts *options.FindOptions) bool {
		// page 2 of 10 skips the first 20 documents, newest first
		return opts.Skip != nil && *opts.Skip == 20 &&
			opts.Limit != nil && *opts.Limit == 10
	})).Return(cursor, nil)
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	bookingDB := databases.NewBookingDatabase(db)
	_, err := bookingDB.FindPaginated(context.Background(), bson.D{}, 10, 2)

	assert.NoError(t, err)
	conn.(*mocksdb.CollectionHelper).AssertExpectations(t)
}

func TestBookingDatabase_UpdateOne(t *testing.T) {
	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &mocksdb.DatabaseHelper{}
	conn = &mocksdb.CollectionHelper{}

	conn.(*mocksdb.CollectionHelper).On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))
	db.(*mocksdb.DatabaseHelper).On("Collection", "bookings").Return(conn)

	bookingDB := databases.NewBookingDatabase(db)
	err := bookingDB.UpdateOne(context.Background(), bson.M{}, bson.M{"$set": bson.M{"booking.repName": "Karin Ek"}})

	assert.EqualError(t, err, "mocked-error")
}
