package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DirGroup-Admin/DirGroup-Admin/internal/logger"
	adapter "github.com/DirGroup-Admin/DirGroup-Admin/internal/logger/adapter/fiber"
)

type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

var consoleJSON = logger.Log{ //nolint:gochecknoglobals
	EnableAccessLogToConsole: true,
	Console:                  logger.Console{Enabled: true},
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name       string
		config     adapter.Config
		method     string
		target     string
		wantOutput *accessLine
	}{
		{
			name:   "no output configured",
			method: fiber.MethodGet,
			target: "/",
		},
		{
			name:   "plain get",
			config: adapter.Config{Config: consoleJSON},
			method: fiber.MethodGet,
			target: "/",
			wantOutput: &accessLine{
				Status: fiber.StatusOK,
				URI:    "/",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:   "query string is kept",
			config: adapter.Config{Config: consoleJSON},
			method: fiber.MethodGet,
			target: "/?search=ops",
			wantOutput: &accessLine{
				Status: fiber.StatusOK,
				URI:    "/?search=ops",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:   "handler error is rendered before logging",
			config: adapter.Config{Config: consoleJSON},
			method: fiber.MethodPost,
			target: "/fail",
			wantOutput: &accessLine{
				Status: fiber.StatusConflict,
				URI:    "/fail",
				Method: fiber.MethodPost,
				Host:   "example.com",
				Error:  "taken",
			},
		},
		{
			name: "checkalive is skipped",
			config: adapter.Config{
				Config: logger.Log{
					EnableAccessLogToConsole: true,
					DisableCheckAlive:        true,
					Console:                  logger.Console{Enabled: true},
				},
				CheckAliveURI: "/checkalive",
			},
			method: fiber.MethodGet,
			target: "/checkalive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, status := serve(t, tc.config, tc.method, tc.target)

			if tc.wantOutput == nil {
				assert.Empty(t, out)
				return
			}

			assert.Equal(t, tc.wantOutput.Status, status)

			var got accessLine
			require.NoError(t, json.Unmarshal([]byte(out), &got), out)

			assert.Equal(t, tc.wantOutput.Status, got.Status)
			assert.Equal(t, tc.wantOutput.URI, got.URI)
			assert.Equal(t, tc.wantOutput.Method, got.Method)
			assert.Equal(t, tc.wantOutput.Host, got.Host)
			assert.Equal(t, tc.wantOutput.Error, got.Error)
		})
	}
}

func TestNewAccessFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "access")

	handler, err := adapter.New(adapter.Config{
		Config: logger.Log{
			File: logger.LogFile{Enabled: true, Path: dir, AccessLog: "access.log"},
		},
	})
	require.NoError(t, err)

	app := fiber.New()
	app.Use(handler)
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))

	content, err := os.ReadFile(filepath.Join(dir, "access.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"status":200`)
}

func serve(t *testing.T, config adapter.Config, method, target string) (string, int) {
	t.Helper()

	stdout := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	handler, err := adapter.New(config)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(handler)
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("hello test") })
	app.Get("/checkalive", func(c fiber.Ctx) error { return c.SendString("OK") })
	app.Post("/fail", func(fiber.Ctx) error { return fiber.NewError(fiber.StatusConflict, "taken") })

	resp, testErr := app.Test(httptest.NewRequest(method, target, nil))

	_ = w.Close()
	os.Stdout = stdout

	out := <-outC

	require.NoError(t, testErr)

	return out, resp.StatusCode
}
