package config

import (
	"time"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
)

// Defaults of optional settings.
const (
	DefaultPort         = 8080
	DefaultShutDownTime = 5 // seconds
	DefaultTokenTTL     = 30 * 24 * time.Hour
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode"   json:"devMode"` // enable dev mode for development
	Title     string     `mapstructure:"title"     json:"title"`
	DB        DB         `mapstructure:"db"        json:"db"`
	Log       logger.Log `mapstructure:"log"       json:"log"`
	Webserver Webserver  `mapstructure:"webserver" json:"webserver"`
	Token     Token      `mapstructure:"token"     json:"token"`
}

// Webserver implements the JSON API listener settings.
type Webserver struct {
	Host           string `mapstructure:"host"           json:"host"`           // listening address, empty for all
	Port           int    `mapstructure:"port"           json:"port"`           // listening port
	ShutDownTime   int    `mapstructure:"shutDownTime"   json:"shutDownTime"`   // seconds to wait for open requests on shutdown
	DisableRecover bool   `mapstructure:"disableRecover" json:"disableRecover"` // disable recover middleware
	BodyLimit      int    `mapstructure:"bodyLimit"      json:"bodyLimit"`      // max request body in bytes, fiber default if 0
}

// Token holds the API token settings.
type Token struct {
	// TTL is the lifetime of issued API tokens.
	TTL time.Duration `mapstructure:"ttl" json:"ttl"`
}
