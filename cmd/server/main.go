package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-session-auth/internal/config"
	"github.com/jrsteele09/go-session-auth/internal/database"
	"github.com/jrsteele09/go-session-auth/internal/logging"
	"github.com/jrsteele09/go-session-auth/server"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/jrsteele09/go-session-auth/sessions/memstore"
	"github.com/jrsteele09/go-session-auth/sessions/redisstore"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/jrsteele09/go-session-auth/users/postgres"
	fakeuserrepo "github.com/jrsteele09/go-session-auth/users/repofake"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c)
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	displayAppname(c.GetAppName())

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	userRepo, closeUsers, err := newUserRepo(ctx, c)
	if err != nil {
		return err
	}
	closers = append(closers, closeUsers)

	cache, closeCache, err := newSessionCache(ctx, c)
	if err != nil {
		return err
	}
	closers = append(closers, closeCache)

	handler, err := server.New(c, server.Deps{
		Users:    userRepo,
		Hasher:   users.BcryptHasher{},
		Sessions: cache,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(srv) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(srv)
}

func newUserRepo(ctx context.Context, c config.Config) (users.UserRepo, func(), error) {
	switch c.GetUserStore() {
	case config.UserStorePostgres:
		db, err := database.Connect(ctx, c)
		if err != nil {
			return nil, nil, fmt.Errorf("connect user store: %w", err)
		}
		repo := postgres.NewUserRepo(db)
		if err := repo.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Msg("using postgres user store")
		return repo, func() { db.Close() }, nil
	default:
		log.Warn().Msg("using in-memory user store, users are lost on restart")
		return fakeuserrepo.NewFakeUserRepo(), func() {}, nil
	}
}

func newSessionCache(ctx context.Context, c config.Config) (sessions.Cache, func(), error) {
	switch c.GetSessionStore() {
	case config.SessionStoreRedis:
		client := redisstore.NewClient(c.GetRedisAddr(), c.GetRedisPassword(), c.GetRedisDB())
		store := redisstore.New(client, c.GetSessionTTL())
		if err := store.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, err
		}
		log.Info().Str("addr", c.GetRedisAddr()).Dur("ttl", c.GetSessionTTL()).Msg("using redis session store")
		return store, func() { client.Close() }, nil
	default:
		log.Info().Int("size", c.GetSessionCacheSize()).Dur("ttl", c.GetSessionTTL()).Msg("using in-memory session store")
		return memstore.New(c.GetSessionCacheSize(), c.GetSessionTTL()), func() {}, nil
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
