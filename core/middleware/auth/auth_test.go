package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/failed-turnovers", func(c *fiber.Ctx) error { return c.SendString("list") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(Config{ApiKey: "secret", Skip: []string{"/health"}})

	tests := []struct {
		name   string
		path   string
		key    string
		status int
	}{
		{"valid key", "/failed-turnovers", "secret", 200},
		{"wrong key", "/failed-turnovers", "nope", 401},
		{"missing key", "/failed-turnovers", "", 401},
		{"skipped path", "/health", "", 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.key != "" {
				req.Header.Set(Header, tt.key)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_EmptyKeyRejectsEverything(t *testing.T) {
	app := newApp(Config{})

	req := httptest.NewRequest("GET", "/failed-turnovers", nil)
	req.Header.Set(Header, "")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
