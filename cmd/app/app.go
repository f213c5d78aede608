package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"imageproxy/internal/allowlist"
	"imageproxy/internal/fetcher"
	"imageproxy/internal/proxy"
	"imageproxy/internal/ratelimiter"
	"imageproxy/internal/store/cache"
)

type application struct {
	config       config
	logger       *zap.SugaredLogger
	allowed      allowlist.List
	fetcher      *fetcher.Fetcher
	pipeline     *proxy.Pipeline
	cacheStorage cache.Storage
	rateLimiter  ratelimiter.Limiter
}

type config struct {
	addr           string
	allowedDomains string
	maxWidth       int
	maxHeight      int
	redisCfg       redisConfig
	cacheTTL       time.Duration
	ratelimiter    ratelimiter.Config
}

type redisConfig struct {
	addr    string
	pw      string
	db      int
	enabled bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.CORSMiddleware)
	r.Use(app.RateLimiterMiddleware)

	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Get("/", app.healthCheckHandler)
	r.Get("/health", app.healthCheckHandler)
	r.Get("/*", app.proxyImageHandler)

	r.Options("/", app.preflightHandler)
	r.Options("/*", app.preflightHandler)

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server started", "addr", app.config.addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server stopped", "addr", app.config.addr)

	return nil
}
