package endpoints

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"chat-rooms-backend/internal/api"
	"chat-rooms-backend/internal/api/middleware"
	"chat-rooms-backend/internal/dto"
	"chat-rooms-backend/internal/hub"
	internaljwt "chat-rooms-backend/internal/jwt"
	"chat-rooms-backend/internal/queue"
)

var (
	serverOnce sync.Once
	testServer *api.APIServer
	testHub    *hub.Hub
)

func init() {
	internaljwt.SetSecret([]byte("endpoint-test-secret"))
}

// sharedServer builds one APIServer for the whole package; the Prometheus
// default registry rejects a second registration of the same collectors.
func sharedServer() (*api.APIServer, *hub.Hub) {
	serverOnce.Do(func() {
		queueManager := queue.NewRequestQueueManager(10, 2)
		testHub = hub.New(hub.NopGateway{})
		testServer = api.NewAPIServer(":0", queueManager, testHub, nil)
	})
	return testServer, testHub
}

func authMux(t *testing.T) http.Handler {
	t.Helper()
	server, _ := sharedServer()
	authEndpoints := NewAuthEndpoints()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/login", server.MakeHTTPHandleFunc(authEndpoints.Login))
	mux.HandleFunc("/api/v1/auth/verify", server.MakeHTTPHandleFunc(authEndpoints.Verify, middleware.ValidateUserJWT))
	mux.HandleFunc("/api/v1/auth/profile", server.MakeHTTPHandleFunc(authEndpoints.Profile, middleware.ValidateUserJWT))
	return mux
}

func doJSONRequest[T any](t *testing.T, handler http.Handler, method, target string, body interface{}, headers map[string]string, expectedStatus int) T {
	t.Helper()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, payload)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d: %s", expectedStatus, rec.Code, rec.Body.String())
	}

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	mux := authMux(t)

	resp := doJSONRequest[dto.AuthResponse](t, mux, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{Name: "Ada", Email: "ada@example.com"}, nil, http.StatusOK)

	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	if resp.User.ID == "" || resp.User.Name != "Ada" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
	if resp.User.Photo == "" {
		t.Fatal("default photo missing")
	}

	user, err := internaljwt.VerifyUser(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if user != resp.User {
		t.Fatalf("token claims %+v do not match returned user %+v", user, resp.User)
	}
}

func TestLoginRequiresNameAndEmail(t *testing.T) {
	mux := authMux(t)

	for _, body := range []dto.LoginRequest{
		{Email: "ada@example.com"},
		{Name: "Ada"},
		{},
	} {
		doJSONRequest[api.ApiError](t, mux, http.MethodPost, "/api/v1/auth/login",
			body, nil, http.StatusBadRequest)
	}
}

func TestVerifyReturnsTokenIdentity(t *testing.T) {
	mux := authMux(t)

	login := doJSONRequest[dto.AuthResponse](t, mux, http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{Name: "Ada", Email: "ada@example.com"}, nil, http.StatusOK)

	for _, path := range []string{"/api/v1/auth/verify", "/api/v1/auth/profile"} {
		resp := doJSONRequest[dto.VerifyResponse](t, mux, http.MethodGet, path, nil,
			map[string]string{"Authorization": "Bearer " + login.Token}, http.StatusOK)
		if !resp.Success || resp.User != login.User {
			t.Fatalf("unexpected identity from %s: %+v", path, resp)
		}
	}
}

func TestVerifyRejectsMissingOrBadToken(t *testing.T) {
	mux := authMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestLoginRejectsWrongMethod(t *testing.T) {
	mux := authMux(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
