// Package db opens the configured database and migrates its schema.
package db

import (
	"database/sql"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/dsn"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/models"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger/adapter/gormlog"
)

// Open connects to the database selected by cfg.GormEngine.
// Driver errors are translated, unique index violations match gorm.ErrDuplicatedKey.
// SQLite is limited to one connection: it serializes writers anyway and an
// in-memory database exists per connection.
func Open(cfg config.DB, logCfg logger.Log) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.GormEngine {
	case config.EngineMySQL:
		dialector = mysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	case config.EngineSQLite:
		dialector = sqlite.Open(dsn.Create(cfg))
	default:
		return nil, errors.Wrapf(config.ErrUnsupportedEngine, "%q", cfg.GormEngine)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlog.New(logCfg), TranslateError: true})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.GormEngine)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access connection pool")
	}

	if cfg.GormEngine == config.EngineSQLite {
		sqlDB.SetMaxOpenConns(1)

		return db, nil
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return db, nil
}

// Migrate creates or updates every table of the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// TxOptions returns the transaction options for writes on engine.
// SQLite has a single isolation level and gets none.
func TxOptions(engine string) *sql.TxOptions {
	switch engine {
	case config.EngineMySQL, config.EnginePostgres:
		return &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	default:
		return nil
	}
}
