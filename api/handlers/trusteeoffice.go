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

// TrusteeOffice exported for testing purposes
type TrusteeOffice struct {
	DB databases.TrusteeOfficeDatabase
}

// TrusteeOfficeHandler returns all trustee offices
func (t TrusteeOffice) TrusteeOfficeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	district := r.URL.Query().Get("district") // optional

	filter := bson.M{}
	if district != "" {
		filter["trusteeOffice.district"] = district
	}

	dbResp, err := t.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get trustee offices", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.TrusteeOffice{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// TrusteeOfficeByIDHandler returns a trustee office by ID
func (t TrusteeOffice) TrusteeOfficeByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officeID := mux.Vars(r)["trustee_office_id"]

	zap.S().Debugf("trustee_office_id: %v", officeID)

	oID, err := primitive.ObjectIDFromHex(officeID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := t.DB.FindOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to get trustee office by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateTrusteeOfficeHandler creates a trustee office
func (t TrusteeOffice) CreateTrusteeOfficeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var office models.TrusteeOffice
	if err := json.NewDecoder(r.Body).Decode(&office.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	office.ID = primitive.NewObjectID()
	office.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	office.Details.UpdatedAt = office.Details.CreatedAt

	_, err := t.DB.InsertOne(ctx, office)
	if err != nil {
		config.ErrorStatus("failed to create trustee office", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Trustee office created successfully",
		"id":      office.ID.Hex(),
	})
}

// UpdateTrusteeOfficeHandler updates a trustee office's details
func (t TrusteeOffice) UpdateTrusteeOfficeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officeID := mux.Vars(r)["trustee_office_id"]

	oID, err := primitive.ObjectIDFromHex(officeID)
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
		update["trusteeOffice."+key] = value
	}
	update["trusteeOffice.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = t.DB.UpdateOne(ctx, bson.M{"_id": oID}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update trustee office", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Trustee office updated successfully",
	})
}

// DeleteTrusteeOfficeHandler deletes a trustee office by ID
func (t TrusteeOffice) DeleteTrusteeOfficeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	officeID := mux.Vars(r)["trustee_office_id"]

	oID, err := primitive.ObjectIDFromHex(officeID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = t.DB.DeleteOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to delete trustee office", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Trustee office deleted successfully",
	})
}
