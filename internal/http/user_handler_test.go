package http

import (
	"net/http"
	"testing"
)

func TestUserHandlerRegister_DuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "Asha", "asha@example.com")

	rec := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Other",
		"email":    "ASHA@example.com",
		"password": "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUserHandlerRegister_InvalidRequest(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{"email": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUserHandlerLogin(t *testing.T) {
	r := newTestRouter(t)
	register(t, r, "Asha", "asha@example.com")

	rec := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandlerRefreshAndLogout(t *testing.T) {
	r := newTestRouter(t)
	acct := register(t, r, "Asha", "asha@example.com")

	rec := doJSON(t, r, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": acct.Refresh})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Tokens struct {
			RefreshToken string `json:"refresh_token"`
		} `json:"tokens"`
	}
	decode(t, rec, &resp)

	rec = doJSON(t, r, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": acct.Refresh})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected rotated token to be rejected, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/auth/logout", "", map[string]string{"refresh_token": resp.Tokens.RefreshToken})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/auth/refresh", "", map[string]string{"refresh_token": resp.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected revoked token to be rejected, got %d", rec.Code)
	}
}

func TestUserHandlerMe(t *testing.T) {
	r := newTestRouter(t)
	acct := register(t, r, "Asha", "asha@example.com")

	if rec := doJSON(t, r, http.MethodGet, "/me", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec := doJSON(t, r, http.MethodPut, "/me", acct.Token, map[string]string{
		"name":       "Asha K",
		"location":   "Indiranagar",
		"occupation": "Designer",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, "/me", acct.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		User map[string]any `json:"user"`
	}
	decode(t, rec, &resp)
	if resp.User["name"] != "Asha K" || resp.User["location"] != "Indiranagar" {
		t.Fatalf("unexpected profile: %v", resp.User)
	}
	if _, leaked := resp.User["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}
}
