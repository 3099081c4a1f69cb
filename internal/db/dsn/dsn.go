// Package dsn builds data source names for the supported database engines.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
)

// Create builds the data source name of the configured engine.
func Create(db config.DB) string {
	switch db.GormEngine {
	case config.EnginePostgres:
		return postgres(db)
	case config.EngineSQLite:
		return sqlite(db)
	default:
		return mysql(db)
	}
}

func mysql(db config.DB) string {
	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
	)

	if db.Extras != "" {
		out += "?" + db.Extras
	}

	return out
}

func postgres(db config.DB) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}

	if db.Extras != "" {
		u.RawQuery = db.Extras
	}

	return u.String()
}

// sqlite enables foreign keys, which SQLite leaves off per connection.
func sqlite(db config.DB) string {
	const pragma = "_pragma=foreign_keys(1)"

	if db.Extras != "" {
		return db.Path + "?" + pragma + "&" + strings.TrimPrefix(db.Extras, "?")
	}

	return db.Path + "?" + pragma
}
