package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUserService struct {
	registerIn  *services.RegisterRequest
	registerOut *models.User
	registerErr error

	loginOut *services.LoginResult
	loginErr error

	listOut []*models.User
	listErr error

	getOut *models.User
	getErr error
}

func (f *fakeUserService) Register(ctx context.Context, req services.RegisterRequest) (*models.User, error) {
	f.registerIn = &req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerOut, nil
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginOut, nil
}

func (f *fakeUserService) List(ctx context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUserService) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// ---- helpers ----

func newTestServer(t *testing.T, svc UserService) *RESTServer {
	t.Helper()
	s, err := NewRESTServer(":0", nopLogger{}, svc, "test-secret")
	if err != nil {
		t.Fatalf("NewRESTServer error: %v", err)
	}
	return s
}

func sampleUser() *models.User {
	return &models.User{
		ID:        1,
		UserID:    "uid-1",
		FirstName: "Yrol",
		LastName:  "Fernando",
		Email:     "test@test.com",
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// ---- CreateUser ----

func TestCreateUser_Success(t *testing.T) {
	svc := &fakeUserService{registerOut: sampleUser()}
	s := newTestServer(t, svc)

	rec := postJSON(t, s.CreateUser, "/users", map[string]string{
		"firstName":      "Yrol",
		"lastName":       "Fernando",
		"email":          "test@test.com",
		"password":       "12345678",
		"repeatPassword": "12345678",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var got UserRest
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if got.UserID != "uid-1" || got.FirstName != "Yrol" || got.LastName != "Fernando" || got.Email != "test@test.com" {
		t.Fatalf("unexpected response: %+v", got)
	}
	if strings.Contains(rec.Body.String(), "assword") {
		t.Fatalf("response must not contain password material: %s", rec.Body.String())
	}
	if svc.registerIn == nil || svc.registerIn.Password != "12345678" {
		t.Fatalf("service did not receive the request: %+v", svc.registerIn)
	}
}

func TestCreateUser_ValidationError(t *testing.T) {
	svc := &fakeUserService{registerErr: fmt.Errorf("%w: password mismatch", common.ErrorValidation)}
	s := newTestServer(t, svc)

	rec := postJSON(t, s.CreateUser, "/users", map[string]string{"firstName": "Yrol"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	svc := &fakeUserService{registerErr: common.ErrorAlreadyExists}
	s := newTestServer(t, svc)

	rec := postJSON(t, s.CreateUser, "/users", map[string]string{
		"firstName": "Yrol", "lastName": "Fernando", "email": "test@test.com",
		"password": "12345678", "repeatPassword": "12345678",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestCreateUser_MalformedBody(t *testing.T) {
	s := newTestServer(t, &fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.CreateUser(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// ---- Login ----

func TestLogin_Success_SetsHeaders(t *testing.T) {
	svc := &fakeUserService{loginOut: &services.LoginResult{AccessToken: "tok-123", UserID: "uid-1"}}
	s := newTestServer(t, svc)

	rec := postJSON(t, s.Login, "/users/login", map[string]string{
		"email": "test@test.com", "password": "12345678",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get(common.AuthorizationHeaderName); got != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header: %q", got)
	}
	if got := rec.Header().Get(common.UserIDHeaderName); got != "uid-1" {
		t.Fatalf("unexpected UserID header: %q", got)
	}
}

func TestLogin_Unauthorized_NoHeaders(t *testing.T) {
	svc := &fakeUserService{loginErr: common.ErrorUnauthorized}
	s := newTestServer(t, svc)

	rec := postJSON(t, s.Login, "/users/login", map[string]string{
		"email": "test@test.com", "password": "wrong",
	})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if rec.Header().Get(common.AuthorizationHeaderName) != "" {
		t.Fatal("no token header may be present on failed login")
	}
	if rec.Header().Get(common.UserIDHeaderName) != "" {
		t.Fatal("no UserID header may be present on failed login")
	}
}

// ---- ListUsers / GetUser ----

func TestListUsers_Success(t *testing.T) {
	svc := &fakeUserService{listOut: []*models.User{sampleUser()}}
	s := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	s.ListUsers(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []UserRest
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "uid-1" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	s := newTestServer(t, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	s.ListUsers(rec, req)

	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestGetUser_NotFound(t *testing.T) {
	svc := &fakeUserService{getErr: common.ErrorNotFound}
	s := newTestServer(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/users/nope", nil)
	rec := httptest.NewRecorder()
	s.GetUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// ---- Ping ----

func TestPing(t *testing.T) {
	s := newTestServer(t, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	s.Ping(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"OK"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
