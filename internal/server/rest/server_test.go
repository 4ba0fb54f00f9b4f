package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
)

func TestHandler_ProtectedRoutesRequireToken(t *testing.T) {
	svc := &fakeUserService{listOut: []*models.User{sampleUser()}, getOut: sampleUser()}
	s := newTestServer(t, svc)
	h := s.Handler()

	for _, target := range []string{"/users", "/users/uid-1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("GET %s without token: expected 403, got %d", target, rec.Code)
		}
	}
}

func TestHandler_ProtectedRoutesWithValidToken(t *testing.T) {
	svc := &fakeUserService{listOut: []*models.User{sampleUser()}, getOut: sampleUser()}
	s := newTestServer(t, svc)
	h := s.Handler()

	tok, err := auth.GenerateToken("uid-1", []byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var got []UserRest
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if len(got) != 1 || got[0].UserID != "uid-1" {
		t.Fatalf("unexpected list: %+v", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/users/uid-1", nil)
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for single user, got %d", rec.Code)
	}
}

func TestHandler_PublicRoutes(t *testing.T) {
	svc := &fakeUserService{registerOut: sampleUser()}
	s := newTestServer(t, svc)
	h := s.Handler()

	// ping requires no credentials
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ping: expected 200, got %d", rec.Code)
	}

	// account creation requires no credentials
	body := `{"firstName":"Yrol","lastName":"Fernando","email":"test@test.com","password":"12345678","repeatPassword":"12345678"}`
	req = httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /users: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
}
