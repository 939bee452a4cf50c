package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pellagroup/conveyance-api/api"
	"github.com/pellagroup/conveyance-api/config"
	"github.com/pellagroup/conveyance-api/databases"
	"github.com/pellagroup/conveyance-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// createUserRequest is the signup payload
type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserHandler returns a user by ID
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("user_id: %v", userID)

	dbResp, err := u.DB.FindOne(ctx, bson.M{"_id": userID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	// never leak the password hash
	dbResp.Details.Password = ""

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UserCreateHandler creates a user with a bcrypt-hashed password
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("email and password are required", http.StatusBadRequest, w, fmt.Errorf("missing credentials"))
		return
	}

	existing, err := u.DB.Find(ctx, bson.M{"user.email": req.Email})
	if err == nil && len(existing) > 0 {
		config.ErrorStatus("email already registered", http.StatusConflict, w, fmt.Errorf("duplicate email %s", req.Email))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	role := req.Role
	if role == "" {
		role = "operator"
	}

	now := time.Now().UTC()
	details := models.UserDetails{
		Email:     req.Email,
		Name:      req.Name,
		Password:  string(hashed),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = u.DB.InsertOne(ctx, details)
	if err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User created successfully",
	})
}

// UserCheckEmailHandler reports whether an email is already registered
func (u User) UserCheckEmailHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	existing, err := u.DB.Find(ctx, bson.M{"user.email": req.Email})
	if err != nil {
		config.ErrorStatus("failed to check email", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"exists": len(existing) > 0,
	})
}

// AdminTokenHandler exchanges basic credentials of an admin user for a
// short-lived JWT guarding the ops surface
func (u User) AdminTokenHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	email, password, ok := r.BasicAuth()
	if !ok {
		config.ErrorStatus("basic auth failed", http.StatusUnauthorized, w, fmt.Errorf("missing basic auth"))
		return
	}

	users, err := u.DB.Find(ctx, bson.M{"user.email": email})
	if err != nil || len(users) == 0 {
		config.ErrorStatus("failed to get user by email", http.StatusUnauthorized, w, fmt.Errorf("no matching email found"))
		return
	}

	user := users[0]
	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if user.Details.Role != "admin" {
		config.ErrorStatus("admin role required", http.StatusForbidden, w, fmt.Errorf("user %s has role %q", user.ID, user.Details.Role))
		return
	}

	token, err := api.IssueAdminToken(user.ID, user.Details.Email, user.Details.Role)
	if err != nil {
		config.ErrorStatus("failed to issue admin token", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"token": token,
		"_id":   user.ID,
	})
}
