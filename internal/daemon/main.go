// Package daemon wires configuration, database and services into the running process.
package daemon

import (
	"context"
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/audit"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/auth"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/dirgroup"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/web"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/web/handler"
)

// ErrConfigNil is returned when the daemon is created without configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// OpenStore connects the configured database, migrates the schema and seeds
// the built-in roles, local groups and admin account.
func OpenStore(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(cfg.DB, cfg.Log)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = seed(ctx, gdb); err != nil {
		return nil, err
	}

	return gdb, nil
}

// New creates a new Daemon instance with the provided configuration.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	gdb, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	auditStore := audit.NewStore(gdb)
	dirGroups := dirgroup.NewService(
		gdb,
		auditStore,
		dirgroup.WithTxOptions(db.TxOptions(cfg.DB.GormEngine)),
	)

	webService, err := web.New(cfg, auth.NewService(gdb), handler.Dependencies{
		DB:        gdb,
		DirGroups: dirGroups,
		Audit:     auditStore,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Daemon{cfg: cfg, db: gdb, webService: webService}, nil
}

// Addr returns the listen address of the web service.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))
}

// Start serves the web service until SIGINT or SIGTERM and closes the database afterwards.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	log.Info().Str("addr", d.Addr()).Str("engine", d.cfg.DB.GormEngine).Msg("starting web service")

	err := d.webService.Start(d.Addr())

	if sqlDB, dbErr := d.db.DB(); dbErr == nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close database")
		}
	}

	return err //nolint:wrapcheck
}
