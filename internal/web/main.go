// Package web serves the JSON API of the directory group engine.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	accesslog "github.com/DirGroup-Admin/DirGroup-Admin/internal/logger/adapter/fiber"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler"
	dirgrouphandler "github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler/admin/dirgroup"
	localgrouphandler "github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler/admin/localgroup"
)

// ErrNilDependency is returned by New when a required dependency is nil.
var ErrNilDependency = errors.New("config, auth service, database and directory group service are required")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until it is shut down.
func (s *Service) Start(addr string) error {
	err := s.App.Listen(addr, fiber.ListenConfig{DisableStartupMessage: !s.cfg.DevMode})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the web service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// checkAlive answers 200 while the service accepts traffic and 503 during shutdown.
func (s *Service) checkAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// New creates the web service with every API route registered.
// deps.Config is set to cfg.
func New(cfg *config.Config, authService *auth.Service, deps handler.Dependencies) (*Service, error) {
	if cfg == nil || authService == nil || deps.DB == nil || deps.DirGroups == nil {
		return nil, ErrNilDependency
	}

	app := fiber.New(
		fiber.Config{
			AppName:       cfg.Title,
			CaseSensitive: true,
			Immutable:     true,
			BodyLimit:     cfg.Webserver.BodyLimit,
			ErrorHandler:  ErrorHandler,
		},
	)

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.Webserver.ShutDownTime == 0,
	}
	service.alive.Store(true)

	accessLog, err := accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		ErrorHandler:  ErrorHandler,
		CheckAliveURI: handler.CheckAlivePath,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	app.Use(accessLog)

	if !cfg.Webserver.DisableRecover {
		app.Use(recoverer.New(recoverer.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Get(handler.CheckAlivePath, service.checkAlive)
	app.Get(handler.MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group(handler.APIPrefix, auth.RequireCaller(authService))
	deps.Config = cfg

	for _, h := range []handler.Service{&dirgrouphandler.Service{}, &localgrouphandler.Service{}} {
		if err = h.Init(api, deps); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	return service, nil
}

// ErrorHandler writes handler errors as a JSON error body.
func ErrorHandler(c fiber.Ctx, err error) error {
	status, body := handler.ErrorResponse(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(status).JSON(fiber.Map{"error": body})
}
