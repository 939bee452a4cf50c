package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
)

// Invoice exported for testing purposes
type Invoice struct {
	DB databases.CaseDatabase
}

// invoiceCheckoutRequest is the payload for creating a checkout session
type invoiceCheckoutRequest struct {
	AmountOre   int64  `json:"amountOre"` // conveyancing fee in öre
	Description string `json:"description"`
}

// CreateCheckoutSessionHandler creates a Stripe checkout session for the
// conveyancing fee on a case
func (i Invoice) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	caseDoc, err := i.DB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to get case by ID", http.StatusNotFound, w, err)
		return
	}

	var req invoiceCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.AmountOre <= 0 {
		config.ErrorStatus("invalid amount", http.StatusBadRequest, w, fmt.Errorf("amountOre must be positive, got %d", req.AmountOre))
		return
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Conveyancing fee, case %s", caseDoc.Details.CaseNumber)
	}

	baseURL := os.Getenv("BASE_URL")
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("sek"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
					UnitAmount: stripe.Int64(req.AmountOre),
				},
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(caseID),
		SuccessURL:        stripe.String(baseURL + "/api/v1/success"),
		CancelURL:         stripe.String(baseURL + "/api/v1/cancel"),
	}

	sess, err := session.New(params)
	if err != nil {
		config.ErrorStatus("failed to create checkout session", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"sessionId": sess.ID,
		"url":       sess.URL,
	})
}

// handleSuccessRedirect is the landing target after a completed payment
func (i Invoice) handleSuccessRedirect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Payment completed"}`))
}

// handleCancelRedirect is the landing target after an abandoned payment
func (i Invoice) handleCancelRedirect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "Payment cancelled"}`))
}
