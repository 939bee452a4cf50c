package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pellagroup/conveyance-api/api/handlers"
	"github.com/pellagroup/conveyance-api/databases"
	mocksdb "github.com/pellagroup/conveyance-api/databases/mocks"
	"github.com/pellagroup/conveyance-api/models"
)

func TestNotification_MarkAllNotificationsAsReadHandler(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/users/user-7/notifications/read-all", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-7"})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	db.On("Collection", "notifications").Return(conn)
	conn.On("UpdateMany", mock.Anything,
		bson.M{"notification.userID": "user-7", "notification.read": false},
		bson.M{"$set": bson.M{"notification.read": true}},
	).Return(&mongo.UpdateResult{MatchedCount: 3, ModifiedCount: 3}, nil)

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.MarkAllNotificationsAsReadHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "Notifications marked as read", "modified": 3}`, rr.Body.String())
}

func TestNotification_MarkAllNotificationsAsReadHandlerDBError(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/users/user-7/notifications/read-all", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "user-7"})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &mocksdb.DatabaseHelper{}
	conn := &mocksdb.CollectionHelper{}
	db.On("Collection", "notifications").Return(conn)
	conn.On("UpdateMany", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	n := handlers.Notification{DB: databases.NewNotificationDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.MarkAllNotificationsAsReadHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to mark notifications as read", Error: "mocked-error"}}
	b, _ := json.Marshal(expected)
	assert.Equal(t, string(b), rr.Body.String())
}
