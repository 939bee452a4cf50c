package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pellagroup/conveyance-api/api"
)

func TestIssueAndParseAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := api.IssueAdminToken("1234", "admin@pellagroup.se", "admin")
	if err != nil {
		t.Fatal(err)
	}
	assert.NotEmpty(t, token)

	claims, err := api.ParseAdminToken(token)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "1234", claims.Subject)
	assert.Equal(t, "admin@pellagroup.se", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssueAdminTokenNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := api.IssueAdminToken("1234", "admin@pellagroup.se", "admin")
	assert.Error(t, err)
}

func TestParseAdminTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := api.IssueAdminToken("1234", "admin@pellagroup.se", "admin")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = api.ParseAdminToken(token)
	assert.Error(t, err)
}

func TestAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	})
	mw := api.AdminMiddleware(next)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/user/create-user", nil)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, `{"error": "unauthorized"}`, rr.Body.String())
	})

	t.Run("non-admin role", func(t *testing.T) {
		token, err := api.IssueAdminToken("1234", "ops@pellagroup.se", "operator")
		if err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest("POST", "/api/v1/user/create-user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("admin role", func(t *testing.T) {
		token, err := api.IssueAdminToken("1234", "admin@pellagroup.se", "admin")
		if err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest("POST", "/api/v1/user/create-user", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}
