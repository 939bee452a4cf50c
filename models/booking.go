package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking holds the structure for the booking collection in mongo
type Booking struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details BookingDetails     `json:"booking" bson:"booking"`
	Version int32              `json:"__v" bson:"__v"`
}

// BookingDetails holds the structure for the inner booking structure as
// defined in the booking collection in mongo
type BookingDetails struct {
	CaseID          string      `json:"caseId" bson:"caseId"`
	TrusteeOfficeID string      `json:"trusteeOfficeId" bson:"trusteeOfficeId"`
	RepName         string      `json:"repName" bson:"repName"`
	Slot            BookingSlot `json:"slot" bson:"slot"`

	// Read-only snapshot of the related case, re-embedded on every update.
	// Used only for rendering the buyer/seller label.
	Case CaseDetails `json:"case" bson:"case"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// BookingSlot is the booked interval, stored as RFC3339 UTC strings the way
// the upstream booking API emits them
type BookingSlot struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// BookingUpdate is the payload accepted by PUT /bookings/{id} and sent by the
// calendar persistence gateway
type BookingUpdate struct {
	CaseID          string `json:"caseId"`
	TrusteeOfficeID string `json:"trusteeOfficeId"`
	Start           string `json:"start"`
	End             string `json:"end"`
	RepName         string `json:"repName"`
}
