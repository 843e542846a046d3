package auth_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"store-inventory/core/authz"
	"store-inventory/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(key string) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: key}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(auth.Principal(c))
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newApp("secret")

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"Valid", "secret", fiber.StatusOK},
		{"Wrong", "nope", fiber.StatusUnauthorized},
		{"Missing", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.key != "" {
				req.Header.Set(auth.HeaderAPIKey, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuth_Principal(t *testing.T) {
	app := newApp("")

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(auth.HeaderUserID, "user-7")
	req.Header.Set(auth.HeaderUserRole, "storekeeper")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var p authz.Principal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, authz.Principal{UserID: "user-7", Role: authz.RoleStorekeeper}, p)
}

func TestAuth_PrincipalOutlivesRequest(t *testing.T) {
	var seen []authz.Principal
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	app.Get("/", func(c *fiber.Ctx) error {
		seen = append(seen, auth.Principal(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(auth.HeaderUserID, fmt.Sprintf("user-%03d", i))
		req.Header.Set(auth.HeaderUserRole, "requester")
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	require.Len(t, seen, 50)
	for i, p := range seen {
		assert.Equal(t, fmt.Sprintf("user-%03d", i), p.UserID)
		assert.Equal(t, authz.RoleRequester, p.Role)
	}
}
