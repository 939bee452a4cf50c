package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Organization holds the structure for the organization collection in mongo
type Organization struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Details OrganizationDetails `json:"organization" bson:"organization"`
	Version int32               `json:"__v" bson:"__v"`
}

// OrganizationDetails holds the structure for the inner organization
// structure as defined in the organization collection in mongo
type OrganizationDetails struct {
	Name      string `json:"name" bson:"name"`
	OrgNumber string `json:"orgNumber" bson:"orgNumber"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address" bson:"address"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
