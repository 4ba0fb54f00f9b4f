// Package rest exposes the user accounts service over HTTP: account creation
// and login are public, user reads sit behind the bearer-token middleware.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserService is the part of the service layer the handlers depend on.
type UserService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	List(ctx context.Context) ([]*models.User, error)
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
}

type RESTServer struct {
	address   string
	users     UserService
	logger    logging.Logger
	jwtSecret []byte
}

func NewRESTServer(a string, l logging.Logger, us UserService, secretKey string) (*RESTServer, error) {
	return &RESTServer{
		address:   a,
		logger:    l.With("module", "rest_server"),
		users:     us,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the route tree. Protected routes are grouped behind the
// access token middleware; everything else stays public.
func (s *RESTServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/ping", s.Ping)
	r.Post("/users", s.CreateUser)
	r.Post("/users/login", s.Login)

	r.Group(func(r chi.Router) {
		r.Use(s.accessTokenMiddleware)
		r.Get("/users", s.ListUsers)
		r.Get("/users/{userId}", s.GetUser)
	})

	return r
}

func (s *RESTServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
