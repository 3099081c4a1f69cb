// Package config reads the service configuration from etc/main.toml.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvJSONOverride names the environment variable holding a JSON document
// that is merged over the file configuration.
const EnvJSONOverride = "DIRGROUP_ADMIN_CONFIG_JSON"

// ReadConfig reads main.toml from the directory path, "./etc/" if empty,
// applies the JSON override from EnvJSONOverride and validates the result.
func ReadConfig(path string) (Config, error) {
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(path, "main.toml"))
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if override := os.Getenv(EnvJSONOverride); override != "" {
		if err := mergeJSON(v, override); err != nil {
			return Config{}, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "DirGroup-Admin")
	v.SetDefault("webserver.port", DefaultPort)
	v.SetDefault("webserver.shutDownTime", DefaultShutDownTime)
	v.SetDefault("db.gormEngine", EngineSQLite)
	v.SetDefault("token.ttl", DefaultTokenTTL)
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "dirgroup-admin")
	v.SetDefault("log.serviceName", "dirgroup-admin")
}

func mergeJSON(v *viper.Viper, configAsJSON string) error {
	j := viper.New()
	j.SetConfigType("json")

	if err := j.ReadConfig(strings.NewReader(configAsJSON)); err != nil {
		return errors.Wrapf(err, "failed to read %s", EnvJSONOverride)
	}

	if err := v.MergeConfigMap(j.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge %s", EnvJSONOverride)
	}

	return nil
}

// DumpConfigJSON returns c as indented JSON with secrets removed.
func DumpConfigJSON(c Config) (string, error) {
	if c.DB.Password != "" {
		c.DB.Password = "********"
	}

	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without and fills
// in defaults for optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	switch c.DB.GormEngine {
	case EngineMySQL, EnginePostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return errors.Wrap(ErrDBHostOrNameEmpty, invalidErrMessage)
		}
	case EngineSQLite:
		if c.DB.Path == "" {
			return errors.Wrap(ErrDBPathEmpty, invalidErrMessage)
		}
	default:
		return errors.Wrapf(ErrUnsupportedEngine, "%s: %q", invalidErrMessage, c.DB.GormEngine)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = DefaultShutDownTime
	}

	if c.Token.TTL <= 0 {
		c.Token.TTL = DefaultTokenTTL
	}

	return nil
}
