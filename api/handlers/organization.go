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

// Organization exported for testing purposes
type Organization struct {
	DB databases.OrganizationDatabase
}

// OrganizationHandler returns all organizations
func (o Organization) OrganizationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := o.DB.Find(ctx, bson.D{})
	if err != nil {
		config.ErrorStatus("failed to get organizations", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Organization{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// OrganizationByIDHandler returns an organization by ID
func (o Organization) OrganizationByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	orgID := mux.Vars(r)["organization_id"]

	zap.S().Debugf("organization_id: %v", orgID)

	oID, err := primitive.ObjectIDFromHex(orgID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	dbResp, err := o.DB.FindOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to get organization by ID", http.StatusNotFound, w, err)
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

// CreateOrganizationHandler creates an organization
func (o Organization) CreateOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var org models.Organization
	if err := json.NewDecoder(r.Body).Decode(&org.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	org.ID = primitive.NewObjectID()
	org.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	org.Details.UpdatedAt = org.Details.CreatedAt

	_, err := o.DB.InsertOne(ctx, org)
	if err != nil {
		config.ErrorStatus("failed to create organization", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Organization created successfully",
		"id":      org.ID.Hex(),
	})
}

// UpdateOrganizationHandler updates an organization's details
func (o Organization) UpdateOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	orgID := mux.Vars(r)["organization_id"]

	oID, err := primitive.ObjectIDFromHex(orgID)
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
		update["organization."+key] = value
	}
	update["organization.updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = o.DB.UpdateOne(ctx, bson.M{"_id": oID}, bson.M{"$set": update})
	if err != nil {
		config.ErrorStatus("failed to update organization", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Organization updated successfully",
	})
}

// DeleteOrganizationHandler deletes an organization by ID
func (o Organization) DeleteOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	orgID := mux.Vars(r)["organization_id"]

	oID, err := primitive.ObjectIDFromHex(orgID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	err = o.DB.DeleteOne(ctx, bson.M{"_id": oID})
	if err != nil {
		config.ErrorStatus("failed to delete organization", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Organization deleted successfully",
	})
}
