package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				GormEngine: config.EngineMySQL,
				User:       "dirgroup",
				Password:   "secret",
				Host:       "db",
				Port:       3306,
				Name:       "dirgroup",
				Extras:     "parseTime=True",
			},
			want: "dirgroup:secret@tcp(db:3306)/dirgroup?parseTime=True",
		},
		{
			name: "mysql without extras",
			db:   config.DB{GormEngine: config.EngineMySQL, User: "u", Password: "p", Host: "h", Port: 1, Name: "n"},
			want: "u:p@tcp(h:1)/n",
		},
		{
			name: "postgres escapes credentials",
			db: config.DB{
				GormEngine: config.EnginePostgres,
				User:       "dirgroup",
				Password:   "p@ss word",
				Host:       "db",
				Port:       5432,
				Name:       "dirgroup",
				Extras:     "sslmode=disable",
			},
			want: "postgres://dirgroup:p%40ss%20word@db:5432/dirgroup?sslmode=disable",
		},
		{
			name: "sqlite memory",
			db:   config.DB{GormEngine: config.EngineSQLite, Path: ":memory:"},
			want: ":memory:?_pragma=foreign_keys(1)",
		},
		{
			name: "sqlite with extras",
			db:   config.DB{GormEngine: config.EngineSQLite, Path: "a.db", Extras: "_pragma=busy_timeout(5000)"},
			want: "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Create(tt.db))
		})
	}
}
