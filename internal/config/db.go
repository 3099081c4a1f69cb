package config

import "time"

// Supported values of DB.GormEngine.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	GormEngine string `mapstructure:"gormEngine" json:"gormEngine"` // mysql, postgres or sqlite

	Host     string `mapstructure:"host"     json:"host"`
	Port     int    `mapstructure:"port"     json:"port"`
	User     string `mapstructure:"user"     json:"user"`
	Password string `mapstructure:"password" json:"password"`
	Name     string `mapstructure:"name"     json:"name"`
	Extras   string `mapstructure:"extras"   json:"extras"` // appended to the DSN, e.g. "charset=utf8mb4&parseTime=True"

	// Path is the database file of the sqlite engine, ":memory:" for a private in-memory database.
	Path string `mapstructure:"path" json:"path"`

	MaxOpenConns    int           `mapstructure:"maxOpenConns"    json:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"    json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime" json:"connMaxLifetime"`
}
