// Package services contains server-side business logic. This file implements
// UserService, which handles account provisioning, credential verification,
// issuing JWTs, and the read operations behind protected endpoints.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/config"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterRequest carries the fields required to provision an account.
// Tags describe the field-shape invariants checked before any store access.
type RegisterRequest struct {
	FirstName      string `validate:"required,min=2,max=50"`
	LastName       string `validate:"required,min=2,max=50"`
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=8"`
	RepeatPassword string `validate:"required,eqfield=Password"`
}

// LoginResult bundles a freshly minted session token with the public id of
// the authenticated account.
type LoginResult struct {
	AccessToken string
	UserID      string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// UserService provides account-related operations:
// - Register: validate and create accounts
// - Login: verify credentials and mint a session token
// - List / GetByUserID: reads used by protected endpoints
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register validates req, assigns a fresh public id, hashes the password, and
// persists the account in a single insert. Field-shape failures yield
// common.ErrorValidation; duplicate email or public id yields
// common.ErrorAlreadyExists (the store enforces uniqueness atomically).
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, validationDetail(err))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return u, nil
}

// Login verifies the email/password pair and, on success, returns a session
// token with the account's public id as its subject. Unknown email and wrong
// password both yield common.ErrorUnauthorized; the unknown-email path still
// performs a bcrypt comparison so the two cases cost the same.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(password, auth.DummyPasswordHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{AccessToken: token, UserID: user.UserID}, nil
}

// List returns all accounts in insertion order.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// GetByUserID returns the account with the given public id, or
// common.ErrorNotFound.
func (s *UserService) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// validationDetail renders the first field failure in a caller-friendly form.
func validationDetail(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		if fe.Field() == "RepeatPassword" && fe.Tag() == "eqfield" {
			return "password mismatch"
		}
		return fmt.Sprintf("invalid %s (%s)", fe.Field(), fe.Tag())
	}
	return err.Error()
}
