// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/morganforge/banktui/internal/model"
)

const adminLoginBody = `{
	"success": true,
	"message": "Login successful",
	"data": {
		"user": {
			"_id": "usr-1",
			"name": "Admin",
			"email": "admin@example.com",
			"role": "admin",
			"isVerified": true
		}
	}
}`

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", HttpOnly: true})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(adminLoginBody))
	}))

	user, err := client.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "admin@example.com" || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials","data":null,"errors":null}`))
	}))

	_, err := client.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("err = %v, want ErrAuthFailed", err)
	}
	if IsRetryable(err) {
		t.Error("a credential rejection must not be retryable")
	}
}

func TestLogin_FieldErrors(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Validation failed","errors":{"email":"Email is required"}}`))
	}))

	_, err := client.Login(context.Background(), "", "pw")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Fields["email"] != "Email is required" {
		t.Errorf("Fields = %v", apiErr.Fields)
	}
}

// =============================================================================
// REAUTHENTICATION TESTS
// =============================================================================

// TestReauth_RefreshOnceThenRetry verifies the 401 recovery path: one
// silent refresh, one retry, and the caller never sees the hiccup.
func TestReauth_RefreshOnceThenRetry(t *testing.T) {
	var meCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		if meCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"Token expired"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"usr-1","name":"Admin","email":"admin@example.com","role":"admin"}}`))
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"success":true,"message":"refreshed"}`))
	})

	client := testClient(t, mux)
	user, err := client.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Errorf("user = %+v", user)
	}
	if refreshCalls.Load() != 1 {
		t.Errorf("refresh calls = %d, want 1", refreshCalls.Load())
	}
	if meCalls.Load() != 2 {
		t.Errorf("profile calls = %d, want 2", meCalls.Load())
	}
}

// TestReauth_RefreshFailureExpiresSession verifies that a dead session
// surfaces as ErrSessionExpired and fires the expiry hook exactly once,
// with no retry storm against the refresh endpoint.
func TestReauth_RefreshFailureExpiresSession(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Refresh token expired"}`))
	})

	client := testClient(t, mux)
	expired := false
	client.OnSessionExpired(func() { expired = true })

	_, err := client.GetProfile(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
	if !expired {
		t.Error("expiry hook did not fire")
	}
	if refreshCalls.Load() != 1 {
		t.Errorf("refresh calls = %d, want 1", refreshCalls.Load())
	}
}

// TestReauth_LoginNotRetried verifies a rejected login is not "repaired"
// with a refresh: bad credentials are final and no refresh fires.
func TestReauth_LoginNotRetried(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"success":true}`))
	})

	client := testClient(t, mux)
	_, err := client.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrAuthFailed) {
		t.Fatalf("err = %v, want ErrAuthFailed", err)
	}
	if refreshCalls.Load() != 0 {
		t.Errorf("refresh calls = %d, want 0", refreshCalls.Load())
	}
}

// =============================================================================
// TRANSPORT AND ENVELOPE TESTS
// =============================================================================

func TestDo_TransportFailureIsRetryable(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.GetProfile(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !IsRetryable(err) {
		t.Error("transport failure should be retryable")
	}
}

func TestDo_ForbiddenSurfacesAsErrForbidden(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"message":"Admin access required"}`))
	}))

	_, err := client.PendingApplications(context.Background(), 1, 20, "", "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestLogout_BareMessageBodyIsSuccess(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/logout" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"message":"Logged out"}`))
	}))

	if err := client.Logout(context.Background()); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
}

func TestDo_SessionCookieCarriedAcrossCalls(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", HttpOnly: true})
		w.Write([]byte(adminLoginBody))
	})
	mux.HandleFunc("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"No session"}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"usr-1","name":"Admin","email":"admin@example.com","role":"admin"}}`))
	})

	client := testClient(t, mux)
	if _, err := client.Login(context.Background(), "admin@example.com", "Admin123!"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := client.GetProfile(context.Background()); err != nil {
		t.Errorf("GetProfile failed: %v", err)
	}
}

func TestDo_NonJSONErrorBodyIsRetryable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))

	_, err := client.GetProfile(context.Background())
	if err == nil {
		t.Fatal("expected an error for a proxy error page")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable: a proxy answering for the gateway is a transport failure", err)
	}
	if !IsRetryable(err) {
		t.Error("proxy error pages should surface as retryable")
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestUpdateProfile_PutsEditedFields(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"phoneNumber":"+15550100"`) {
			t.Errorf("body missing edited field: %s", body)
		}
		if strings.Contains(string(body), `"email"`) {
			t.Errorf("empty fields must be omitted, got: %s", body)
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"usr-1","name":"Pat Q. Operator","phoneNumber":"+15550100","role":"admin"}}`))
	}))

	user, err := client.UpdateProfile(context.Background(), UpdateProfileRequest{
		Name:        "Pat Q. Operator",
		PhoneNumber: "+15550100",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Name != "Pat Q. Operator" {
		t.Errorf("user = %+v", user)
	}
}

func TestUpdatePreferences_PutsPreferences(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/me/preferences" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"theme":"dark"`) {
			t.Errorf("body = %s", body)
		}
		w.Write([]byte(`{"success":true,"data":{"_id":"usr-1","name":"Pat","role":"admin","preferences":{"theme":"dark","language":"en","notifications":true}}}`))
	}))

	user, err := client.UpdatePreferences(context.Background(), model.Preferences{
		Theme: "dark", Language: "en", Notifications: true,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	if user.Preferences.Theme != "dark" {
		t.Errorf("preferences = %+v", user.Preferences)
	}
}

func TestChangePassword_SendsCurrentAndNewOnly(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/users/me/password" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"currentPassword":"Old123!"`) ||
			!strings.Contains(string(body), `"newPassword":"New456!"`) {
			t.Errorf("body = %s", body)
		}
		if strings.Contains(string(body), "confirm") {
			t.Errorf("confirmation must stay client-side, got: %s", body)
		}
		w.Write([]byte(`{"success":true,"message":"Password updated"}`))
	}))

	if err := client.ChangePassword(context.Background(), "Old123!", "New456!"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
}
