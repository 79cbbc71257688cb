package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
	"github.com/rajivgeraev/flippy-motors/internal/middleware"
	"github.com/rajivgeraev/flippy-motors/internal/models"
	"github.com/rajivgeraev/flippy-motors/internal/session"
	"github.com/rajivgeraev/flippy-motors/internal/storage"
	"github.com/rajivgeraev/flippy-motors/internal/store"
	"github.com/rajivgeraev/flippy-motors/internal/utils"
)

func newAuthApp(t *testing.T, backend http.Handler) (*fiber.App, *session.Manager) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	manager := session.NewManager(storage.NewMemory(), 0)
	t.Cleanup(manager.Close)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Use(middleware.SessionMiddleware(utils.NewJWTService("test-secret"), manager, false))
	NewAuthService(apiclient.NewWithBaseURL(srv.URL, 5*time.Second)).SetupRoutes(app)
	return app, manager
}

func send(t *testing.T, app *fiber.App, method, target, body, cookie string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.SessionCookie {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("session cookie not issued")
	return ""
}

func TestLoginMeLogout(t *testing.T) {
	var gotUsername, gotContentType string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotUsername = r.PostForm.Get("username")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "tok",
			TokenType:   "bearer",
			User:        models.User{ID: "1", Email: "buyer@example.com"},
		})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.User{ID: "1", Email: "buyer@example.com"})
	})
	app, manager := newAuthApp(t, mux)

	resp, body := send(t, app, http.MethodPost, "/api/auth/login", `{"email":"buyer@example.com","password":"secret1"}`, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", resp.StatusCode, body)
	}
	if gotUsername != "buyer@example.com" || !strings.HasPrefix(gotContentType, "application/x-www-form-urlencoded") {
		t.Errorf("backend got username %q content type %q", gotUsername, gotContentType)
	}
	var snap store.AuthSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !snap.IsAuthenticated || snap.User == nil || snap.User.Email != "buyer@example.com" {
		t.Errorf("snapshot = %+v", snap)
	}

	cookie := sessionCookie(t, resp)

	resp, body = send(t, app, http.MethodGet, "/api/auth/me", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", resp.StatusCode, body)
	}

	if manager.Len() != 1 {
		t.Fatalf("sessions = %d", manager.Len())
	}
	resp, _ = send(t, app, http.MethodGet, "/api/auth/session", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", resp.StatusCode)
	}

	resp, body = send(t, app, http.MethodPost, "/api/auth/logout", "", cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.IsAuthenticated || snap.User != nil {
		t.Errorf("after logout snapshot = %+v", snap)
	}

	resp, _ = send(t, app, http.MethodGet, "/api/auth/me", "", cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("me after logout status = %d", resp.StatusCode)
	}
}

func TestLoginValidationSkipsBackend(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	app, _ := newAuthApp(t, mux)

	resp, body := send(t, app, http.MethodPost, "/api/auth/login", `{"email":"","password":""}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"email"`) || !strings.Contains(string(body), `"password"`) {
		t.Errorf("body = %s", body)
	}

	resp, _ = send(t, app, http.MethodPost, "/api/auth/register",
		`{"email":"bad","password":"123","confirm_password":"124"}`, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("register status = %d", resp.StatusCode)
	}
	if called {
		t.Error("backend must not be called when validation fails")
	}
}

func TestLoginBackendErrorPassesDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})
	app, _ := newAuthApp(t, mux)

	resp, body := send(t, app, http.MethodPost, "/api/auth/login", `{"email":"a@b.co","password":"wrong"}`, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Incorrect email or password") {
		t.Errorf("body = %s", body)
	}
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		confirm string
		fields  []string
	}{
		{"valid", models.RegisterRequest{Email: "a@b.co", Password: "secret1"}, "secret1", nil},
		{"bad email", models.RegisterRequest{Email: "a@b", Password: "secret1"}, "secret1", []string{"email"}},
		{"short password", models.RegisterRequest{Email: "a@b.co", Password: "123"}, "123", []string{"password"}},
		{"mismatch", models.RegisterRequest{Email: "a@b.co", Password: "secret1"}, "secret2", []string{"confirm_password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.req, tt.confirm)
			if len(errs) != len(tt.fields) {
				t.Fatalf("errs = %v, want fields %v", errs, tt.fields)
			}
			for _, f := range tt.fields {
				if _, ok := errs[f]; !ok {
					t.Errorf("missing error for %s", f)
				}
			}
		})
	}
}
