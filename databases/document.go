package databases

// go generate: mockery --name DocumentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/models"
)

const documentName = "documents"

// DocumentDatabase contains the methods to use with the document database
type DocumentDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Document, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type documentDatabase struct {
	db DatabaseHelper
}

// NewDocumentDatabase initializes a new instance of document database with the provided db connection
func NewDocumentDatabase(db DatabaseHelper) DocumentDatabase {
	return &documentDatabase{
		db: db,
	}
}

func (c *documentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Document, error) {
	document := &models.Document{}
	err := c.db.Collection(documentName).FindOne(ctx, filter, opts...).Decode(&document)
	if err != nil {
		return nil, err
	}
	return document, nil
}

func (c *documentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Document, error) {
	var documents []models.Document
	curr, err := c.db.Collection(documentName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &documents)
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (c *documentDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(documentName).InsertOne(ctx, document, opts...)
}

func (c *documentDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(documentName).DeleteOne(ctx, filter, opts...)
}
