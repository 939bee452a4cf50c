package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Broker holds the structure for the broker collection in mongo
type Broker struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details BrokerDetails      `json:"broker" bson:"broker"`
	Version int32              `json:"__v" bson:"__v"`
}

// BrokerDetails holds the structure for the inner broker structure as
// defined in the broker collection in mongo
type BrokerDetails struct {
	FirstName      string `json:"firstName" bson:"firstName"`
	LastName       string `json:"lastName" bson:"lastName"`
	Email          string `json:"email" bson:"email"`
	Phone          string `json:"phone" bson:"phone"`
	OrganizationID string `json:"organizationID" bson:"organizationID"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
