// Package server initializes and runs the authentication server: it opens
// the database, applies migrations, picks the refresh-token backend, wires
// the portal client and services, and runs the HTTP endpoint until the
// process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Chuseok22/Malsami-BE/internal/logging"
	"github.com/Chuseok22/Malsami-BE/internal/server/auth"
	"github.com/Chuseok22/Malsami-BE/internal/server/config"
	"github.com/Chuseok22/Malsami-BE/internal/server/httpapi"
	"github.com/Chuseok22/Malsami-BE/internal/server/portal"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/refreshtokens"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/repomanager"
	"github.com/Chuseok22/Malsami-BE/internal/server/services"
	"github.com/redis/go-redis/v9"
)

// App holds the wired components of the auth server.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	members *services.MemberService
}

// NewApp wires the application from config: database, migrations,
// refresh-token store, portal client, token issuer, and member service.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// Refresh tokens live in Redis when an address is configured, with the
	// member store staying in Postgres either way.
	var refreshRepo refreshtokens.Repository
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		refreshRepo = refreshtokens.NewRedisRepository(client)
		logger.Info(ctx, "refresh tokens stored in redis", "addr", cfg.RedisAddr)
	} else {
		refreshRepo = refreshtokens.NewPostgresRepository(db)
	}

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	verifier := portal.NewClient(cfg.PortalBaseURL, cfg.PortalTimeout)

	members := services.NewMemberService(db, rm, refreshRepo, verifier, issuer, cfg, logger)

	return &App{config: cfg, logger: logger, db: db, members: members}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.members)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
