package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// NotificationHub stores connected operators (userId -> *websocket.Conn).
// It doubles as the calendar controller's Notifier: reschedule failures are
// broadcast to every connected operator as toast events.
type NotificationHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewNotificationHub creates an empty hub
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Notify broadcasts a toast-style notice to all connected operators.
// Delivery is best effort and never blocks the caller on a slow peer beyond
// the websocket write.
func (h *NotificationHub) Notify(level, message string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "calendar_notice",
			"data": map[string]string{
				"type":    level,
				"message": message,
			},
		})
		if err != nil {
			zap.S().Errorw("failed to send calendar notice", "userID", userID, "error", err)
			delete(h.clients, userID)
			conn.Close()
		}
	}
}

// SendToUser delivers a notification to one connected user, if present
func (h *NotificationHub) SendToUser(userID string, notification interface{}) {
	h.mutex.Lock()
	conn, exists := h.clients[userID]
	h.mutex.Unlock()

	if !exists {
		return
	}
	err := conn.WriteJSON(map[string]interface{}{
		"event": "new_notification",
		"data":  notification,
	})
	if err != nil {
		zap.S().Errorw("failed to send notification", "userID", userID, "error", err)
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		conn.Close()
	}
}

// HandleWebSocket upgrades the connection and registers the operator
func (h *NotificationHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		conn.Close()
		return
	}

	h.mutex.Lock()
	h.clients[userID] = conn
	h.mutex.Unlock()
	zap.S().Debugf("User %s connected to /ws/notifications", userID)

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, userID)
		h.mutex.Unlock()
		zap.S().Debugf("User %s disconnected from /ws/notifications", userID)
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			conn.Close()
			break
		}
	}
}

// Notification exported for testing purposes
type Notification struct {
	DB  databases.NotificationDatabase
	Hub *NotificationHub
}

// GetUserNotificationsHandler returns all stored notifications for a user
func (n Notification) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	userID := mux.Vars(r)["user_id"]

	dbResp, err := n.DB.Find(ctx, bson.M{"notification.userID": userID})
	if err != nil {
		config.ErrorStatus("failed to get notifications", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Notification{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateNotificationHandler stores a notification and pushes it live to the
// target user when connected
func (n Notification) CreateNotificationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var notification models.Notification
	if err := json.NewDecoder(r.Body).Decode(&notification.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	notification.ID = primitive.NewObjectID()
	notification.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	_, err := n.DB.InsertOne(ctx, notification)
	if err != nil {
		config.ErrorStatus("failed to create notification", http.StatusInternalServerError, w, err)
		return
	}

	if n.Hub != nil {
		n.Hub.SendToUser(notification.Details.UserID, notification)
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Notification created successfully",
		"id":      notification.ID.Hex(),
	})
}

// MarkNotificationAsReadHandler marks a stored notification as read
func (n Notification) MarkNotificationAsReadHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	notificationID := mux.Vars(r)["notification_id"]

	nID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = n.DB.UpdateOne(ctx, bson.M{"_id": nID}, bson.M{"$set": bson.M{"notification.read": true}})
	if err != nil {
		config.ErrorStatus("failed to mark notification as read", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsAsReadHandler marks every unread notification of a user
// as read and reports how many were affected
func (n Notification) MarkAllNotificationsAsReadHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	userID := mux.Vars(r)["user_id"]

	modified, err := n.DB.UpdateMany(ctx,
		bson.M{"notification.userID": userID, "notification.read": false},
		bson.M{"$set": bson.M{"notification.read": true}},
	)
	if err != nil {
		config.ErrorStatus("failed to mark notifications as read", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":  "Notifications marked as read",
		"modified": modified,
	})
}

// DeleteNotificationHandler deletes a stored notification
func (n Notification) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	notificationID := mux.Vars(r)["notification_id"]

	nID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = n.DB.DeleteOne(ctx, bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to delete notification", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Notification deleted successfully",
	})
}
