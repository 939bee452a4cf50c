package databases

// go generate: mockery --name OrganizationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/models"
)

const organizationName = "organizations"

// OrganizationDatabase contains the methods to use with the organization database
type OrganizationDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Organization, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Organization, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type organizationDatabase struct {
	db DatabaseHelper
}

// NewOrganizationDatabase initializes a new instance of organization database with the provided db connection
func NewOrganizationDatabase(db DatabaseHelper) OrganizationDatabase {
	return &organizationDatabase{
		db: db,
	}
}

func (c *organizationDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Organization, error) {
	organization := &models.Organization{}
	err := c.db.Collection(organizationName).FindOne(ctx, filter, opts...).Decode(&organization)
	if err != nil {
		return nil, err
	}
	return organization, nil
}

func (c *organizationDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Organization, error) {
	var organizations []models.Organization
	curr, err := c.db.Collection(organizationName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &organizations)
	if err != nil {
		return nil, err
	}
	return organizations, nil
}

func (c *organizationDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(organizationName).InsertOne(ctx, document, opts...)
}

func (c *organizationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(organizationName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *organizationDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(organizationName).DeleteOne(ctx, filter, opts...)
}
