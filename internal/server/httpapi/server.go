// Package httpapi exposes the authentication service over HTTP. The
// refresh credential travels only in an HTTP-only cookie; response bodies
// carry the access token and public member fields.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/logging"
	"github.com/Chuseok22/Malsami-BE/internal/server/services"
)

// Server serves the auth endpoints.
type Server struct {
	address string
	members *services.MemberService
	logger  logging.Logger
}

// NewServer constructs an HTTP server for the given bind address.
func NewServer(address string, logger logging.Logger, members *services.MemberService) *Server {
	return &Server{
		address: address,
		members: members,
		logger:  logger.With("module", "httpapi"),
	}
}

// Routes builds the request multiplexer. Split out from Run so tests can
// drive the handlers through httptest without binding a socket.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)
	// Sign-out lives under the cookie's pinned path: the refresh cookie is
	// scoped to /api/auth/refresh, so revocation must be reachable there or
	// browsers never send the token along.
	mux.HandleFunc("DELETE /api/auth/refresh", s.handleSignOut)
	mux.Handle("GET /api/members/me", s.requireAuth(http.HandlerFunc(s.handleMe)))
	return mux
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
