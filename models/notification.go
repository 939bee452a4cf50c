package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Notification holds the structure for the notification collection in mongo.
// Notifications are ephemeral toast-style messages; the stored copy only
// backs the unread badge and history view.
type Notification struct {
	ID      primitive.ObjectID  `json:"_id" bson:"_id"`
	Details NotificationDetails `json:"notification" bson:"notification"`
	Version int32               `json:"__v" bson:"__v"`
}

// NotificationDetails holds the structure for the inner notification
// structure as defined in the notification collection in mongo
type NotificationDetails struct {
	UserID  string `json:"userID" bson:"userID"`
	Type    string `json:"type" bson:"type"` // "info", "error"
	Message string `json:"message" bson:"message"`
	Read    bool   `json:"read" bson:"read"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
