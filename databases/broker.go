package databases

// go generate: mockery --name BrokerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pellagroup/conveyance-api/models"
)

const brokerName = "brokers"

// BrokerDatabase contains the methods to use with the broker database
type BrokerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Broker, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Broker, error)
	InsertOne(context.Context, interface{}, ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(context.Context, interface{}, interface{}, ...*options.UpdateOptions) error
	DeleteOne(context.Context, interface{}, ...*options.DeleteOptions) error
}

type brokerDatabase struct {
	db DatabaseHelper
}

// NewBrokerDatabase initializes a new instance of broker database with the provided db connection
func NewBrokerDatabase(db DatabaseHelper) BrokerDatabase {
	return &brokerDatabase{
		db: db,
	}
}

func (c *brokerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Broker, error) {
	broker := &models.Broker{}
	err := c.db.Collection(brokerName).FindOne(ctx, filter, opts...).Decode(&broker)
	if err != nil {
		return nil, err
	}
	return broker, nil
}

func (c *brokerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Broker, error) {
	var brokers []models.Broker
	curr, err := c.db.Collection(brokerName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &brokers)
	if err != nil {
		return nil, err
	}
	return brokers, nil
}

func (c *brokerDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(brokerName).InsertOne(ctx, document, opts...)
}

func (c *brokerDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(brokerName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *brokerDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(brokerName).DeleteOne(ctx, filter, opts...)
}
