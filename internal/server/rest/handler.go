package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserRest is the public representation of an account. Password material is
// never part of it.
type UserRest struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type CreateUserRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUserRest(u *models.User) UserRest {
	return UserRest{
		UserID:    u.UserID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

func (s *RESTServer) CreateUser(w http.ResponseWriter, r *http.Request) {

	s.logger.Info(r.Context(), "Registration request")

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.users.Register(r.Context(), services.RegisterRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		RepeatPassword: req.RepeatPassword,
	})

	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			s.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, common.ErrorAlreadyExists):
			s.writeError(w, http.StatusConflict, "user already exists")
		default:
			s.logger.Error(r.Context(), err.Error())
			s.writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	s.logger.Info(r.Context(), "Registered", "userId", user.UserID)
	s.writeJSON(w, http.StatusOK, toUserRest(user))
}

func (s *RESTServer) Login(w http.ResponseWriter, r *http.Request) {

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)

	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// one generic rejection for unknown email and wrong password
			s.writeError(w, http.StatusForbidden, "unauthorized")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set(common.AuthorizationHeaderName, common.BearerPrefix+result.AccessToken)
	w.Header().Set(common.UserIDHeaderName, result.UserID)
	w.WriteHeader(http.StatusOK)
}

func (s *RESTServer) ListUsers(w http.ResponseWriter, r *http.Request) {

	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result := make([]UserRest, 0, len(users))
	for _, u := range users {
		result = append(result, toUserRest(u))
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *RESTServer) GetUser(w http.ResponseWriter, r *http.Request) {

	userID := chi.URLParam(r, "userId")

	user, err := s.users.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, http.StatusNotFound, "user not found")
			return
		}
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, toUserRest(user))
}

func (s *RESTServer) Ping(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *RESTServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "error encoding response", "error", err.Error())
	}
}

func (s *RESTServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
