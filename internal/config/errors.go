package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnsupportedEngine error if db.gormEngine is none of mysql, postgres and sqlite.
	ErrUnsupportedEngine = errors.New("toml config db.gormEngine is not supported")

	// ErrDBHostOrNameEmpty error if a server engine is configured without host or database name.
	ErrDBHostOrNameEmpty = errors.New("toml config db.host and db.name can not be empty")

	// ErrDBPathEmpty error if the sqlite engine is configured without a file.
	ErrDBPathEmpty = errors.New("toml config db.path can not be empty for sqlite")
)
