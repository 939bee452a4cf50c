package databases

// go generate: mockery --name TrusteeOfficeDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/models"
)

const trusteeOfficeName = "trusteeoffices"

// TrusteeOfficeDatabase contains the methods to use with the trustee office database
type TrusteeOfficeDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.TrusteeOffice, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TrusteeOffice, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type trusteeOfficeDatabase struct {
	db DatabaseHelper
}

// NewTrusteeOfficeDatabase initializes a new instance of trustee office database with the provided db connection
func NewTrusteeOfficeDatabase(db DatabaseHelper) TrusteeOfficeDatabase {
	return &trusteeOfficeDatabase{
		db: db,
	}
}

func (c *trusteeOfficeDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.TrusteeOffice, error) {
	office := &models.TrusteeOffice{}
	err := c.db.Collection(trusteeOfficeName).FindOne(ctx, filter, opts...).Decode(&office)
	if err != nil {
		return nil, err
	}
	return office, nil
}

func (c *trusteeOfficeDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.TrusteeOffice, error) {
	var offices []models.TrusteeOffice
	curr, err := c.db.Collection(trusteeOfficeName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &offices)
	if err != nil {
		return nil, err
	}
	return offices, nil
}

func (c *trusteeOfficeDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(trusteeOfficeName).InsertOne(ctx, document, opts...)
}

func (c *trusteeOfficeDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(trusteeOfficeName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *trusteeOfficeDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(trusteeOfficeName).DeleteOne(ctx, filter, opts...)
}
