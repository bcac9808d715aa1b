package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rental-hub/internal/repository/sqlite"
	"rental-hub/internal/service"
)

// newTestRouter arma el stack completo sobre una base SQLite temporal.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	users := sqlite.NewUserRepository(db)
	listings := sqlite.NewListingRepository(db)
	comments := sqlite.NewCommentRepository(db)
	conversations := sqlite.NewConversationRepository(db)
	messages := sqlite.NewMessageRepository(db)

	jwtSvc := service.NewJWTServiceWithStore("test-secret", 15*time.Minute, time.Hour, service.NewMemoryRefreshTokenStore())
	userH := NewUserHandler(logger, service.NewUserService(logger, users), jwtSvc)
	listingH := NewListingHandler(logger, service.NewListingService(listings, users), service.NewCommentService(listings, comments))
	convH := NewConversationHandler(logger,
		service.NewConversationService(logger, listings, conversations),
		service.NewMessageService(logger, conversations, messages),
	)

	return NewRouter(logger, jwtSvc, []string{"*"}, db.PingContext, userH, listingH, convH)
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type testAccount struct {
	ID      string
	Token   string
	Refresh string
}

func register(t *testing.T, r http.Handler, name, email string) testAccount {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Tokens service.TokenPair `json:"tokens"`
	}
	decode(t, rec, &resp)
	return testAccount{ID: resp.User.ID, Token: resp.Tokens.AccessToken, Refresh: resp.Tokens.RefreshToken}
}

func createListing(t *testing.T, r http.Handler, owner testAccount, title string) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/listings", owner.Token, map[string]any{
		"title":          title,
		"location":       "Koramangala, Bengaluru",
		"price":          32000,
		"bedrooms":       2,
		"bathrooms":      2,
		"available_from": "2026-11-01",
		"amenities":      []string{"wifi", "lift"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create listing: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Listing struct {
			ID string `json:"id"`
		} `json:"listing"`
	}
	decode(t, rec, &resp)
	return resp.Listing.ID
}
