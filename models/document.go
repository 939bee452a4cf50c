package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Document holds the structure for the document collection in mongo.
// The file itself lives in Cloudinary; this record tracks the metadata.
type Document struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details DocumentDetails    `json:"document" bson:"document"`
	Version int32              `json:"__v" bson:"__v"`
}

// DocumentDetails holds the structure for the inner document structure as
// defined in the document collection in mongo
type DocumentDetails struct {
	CaseID     string `json:"caseID" bson:"caseID"`
	Title      string `json:"title" bson:"title"`
	PublicID   string `json:"publicID" bson:"publicID"`
	SecureURL  string `json:"secureURL" bson:"secureURL"`
	Format     string `json:"format" bson:"format"`
	UploadedBy string `json:"uploadedBy" bson:"uploadedBy"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
