package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

// Broker exported for testing purposes
type Broker struct {
	DB databases.BrokerDatabase
}

// BrokerHandler returns all brokers
func (b Broker) BrokerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := b.DB.Find(ctx, bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get brokers", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Broker{}
	}
	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// BrokerByIDHandler returns a broker by ID
func (b Broker) BrokerByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	brokerID := mux.Vars(r)["broker_id"]

	zap.S().Debugf("broker_id: %v", brokerID)

	bID, err := primitive.ObjectIDFromHex(brokerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to get broker by ID", http.StatusNotFound, w, err)
		return
	}

	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// BrokersByOrganizationIDHandler returns all brokers belonging to the given
// organization
func (b Broker) BrokersByOrganizationIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	orgID := mux.Vars(r)["organization_id"]

	zap.S().Debugf("organization_id: %v", orgID)

	dbResp, err := b.DB.Find(ctx, bson.M{"broker.organizationID": orgID})
	if err != nil {
		config.ErrorStatus("failed to get brokers by organization ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Broker{}
	}
	res, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res)
}

// CreateBrokerHandler creates a broker
func (b Broker) CreateBrokerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var broker models.Broker
	if err := json.NewDecoder(r.Body).Decode(&broker.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	broker.ID = primitive.NewObjectID()
	broker.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	broker.Details.UpdatedAt = broker.Details.CreatedAt

	_, err := b.DB.InsertOne(ctx, broker)
	if err != nil {
		config.ErrorStatus("failed to create broker", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Broker created successfully",
		"id":      broker.ID.Hex(),
	})
}

// UpdateBrokerHandler updates a broker's details
func (b Broker) UpdateBrokerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	brokerID := mux.Vars(r)["broker_id"]

	bID, err := primitive.ObjectIDFromHex(brokerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var updatedFields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updatedFields); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	update := bson.M{}
	for key, value := range updatedFields {
		update["broker."+key] = value
	}
	update["broker.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = b.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update broker", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Broker updated successfully",
	})
}

// DeleteBrokerHandler deletes a broker by ID
func (b Broker) DeleteBrokerHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	brokerID := mux.Vars(r)["broker_id"]

	bID, err := primitive.ObjectIDFromHex(brokerID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = b.DB.DeleteOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to delete broker", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Broker deleted successfully",
	})
}
