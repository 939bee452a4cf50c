package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Party roles as stored on a case. Every conveyancing case carries at most
// one party group per role.
const (
	PartyRoleBuyer  = "BUYER"
	PartyRoleSeller = "SELLER"
)

// Case holds the structure for the case collection in mongo
type Case struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details CaseDetails        `json:"case" bson:"case"`
	Version int32              `json:"__v" bson:"__v"`
}

// CaseDetails holds the structure for the inner case structure as defined
// in the case collection in mongo
type CaseDetails struct {
	CaseNumber     string  `json:"caseNumber" bson:"caseNumber"`
	Status         string  `json:"status" bson:"status"` // "draft", "ready", "booked", "settled", "archived"
	Address        string  `json:"address" bson:"address"`
	BrokerID       string  `json:"brokerID" bson:"brokerID"`
	OrganizationID string  `json:"organizationID" bson:"organizationID"`
	Parties        []Party `json:"parties" bson:"parties"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Party is a role-tagged group of case participants
type Party struct {
	Role    string        `json:"role" bson:"role"`
	Members []PartyMember `json:"members" bson:"members"`
}

// PartyMember is one person inside a party, used for display labeling
type PartyMember struct {
	Name string `json:"name" bson:"name"`
}
