package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TrusteeOffice holds the structure for the trusteeOffice collection in mongo
type TrusteeOffice struct {
	ID      primitive.ObjectID   `json:"_id" bson:"_id"`
	Details TrusteeOfficeDetails `json:"trusteeOffice" bson:"trusteeOffice"`
	Version int32                `json:"__v" bson:"__v"`
}

// TrusteeOfficeDetails holds the structure for the inner trustee office
// structure as defined in the trusteeOffice collection in mongo
type TrusteeOfficeDetails struct {
	Name     string `json:"name" bson:"name"`
	District string `json:"district" bson:"district"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
