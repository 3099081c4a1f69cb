package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/db/testdb"
)

func TestRequireCaller(t *testing.T) {
	db := testdb.Seeded(t)
	svc := NewService(db)

	createUser(t, db, "Admin", testdb.RoleSuperAdmin, true)

	token, err := svc.IssueToken(context.Background(), "Admin", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(RequireCaller(svc))
	app.Get("/whoami", func(c fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return fiber.ErrInternalServerError
		}

		return c.SendString(caller.Username)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no header", wantStatus: fiber.StatusUnauthorized},
		{name: "basic auth", header: "Basic YWRtaW46YWRtaW4=", wantStatus: fiber.StatusUnauthorized},
		{name: "bad token", header: "Bearer abc.def", wantStatus: fiber.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantStatus: fiber.StatusOK, wantBody: "Admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
