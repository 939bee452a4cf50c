package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

// Document exported for testing purposes. Files live in Cloudinary; the
// collection only tracks metadata.
type Document struct {
	DB databases.DocumentDatabase
}

// DocumentsByCaseIDHandler returns all documents attached to the given case
func (d Document) DocumentsByCaseIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	caseID := mux.Vars(r)["case_id"]

	zap.S().Debugf("case_id: %v", caseID)

	dbResp, err := d.DB.Find(ctx, bson.M{"document.caseID": caseID})
	if err != nil {
		config.ErrorStatus("failed to get documents by case ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Document{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateDocumentHandler stores document metadata after the client has
// completed a signed upload to Cloudinary
func (d Document) CreateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if doc.Details.CaseID == "" || doc.Details.PublicID == "" {
		config.ErrorStatus("caseID and publicID are required", http.StatusBadRequest, w, errors.New("missing required fields"))
		return
	}

	doc.ID = primitive.NewObjectID()
	doc.Details.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	doc.Details.UpdatedAt = doc.Details.CreatedAt

	_, err := d.DB.InsertOne(ctx, doc)
	if err != nil {
		config.ErrorStatus("failed to create document", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Document created successfully",
		"id":      doc.ID.Hex(),
	})
}

// DeleteDocumentHandler deletes a document record and destroys the backing
// Cloudinary asset
func (d Document) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docID := mux.Vars(r)["document_id"]

	dID, err := primitive.ObjectIDFromHex(docID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	doc, err := d.DB.FindOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to get document by ID", http.StatusNotFound, w, err)
		return
	}

	if doc.Details.PublicID != "" {
		if err := destroyCloudinaryAsset(r.Context(), doc.Details.PublicID); err != nil {
			// The metadata record still goes away; a stray asset is
			// recoverable from the Cloudinary console.
			zap.S().Errorw("failed to destroy cloudinary asset",
				"publicID", doc.Details.PublicID,
				"error", err)
		}
	}

	err = d.DB.DeleteOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to delete document", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Document deleted successfully",
	})
}

func destroyCloudinaryAsset(ctx context.Context, publicID string) error {
	cld, err := cloudinary.NewFromURL(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		return err
	}
	_, err = cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct{}

// GenerateSignature generates a signature for Cloudinary uploads
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	uploadPreset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	h := hmac.New(sha1.New, []byte(apiSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + uploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
