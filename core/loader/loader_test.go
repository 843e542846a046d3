package loader_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"store-inventory/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
}

func (s stubFeature) Name() string    { return s.name }
func (s stubFeature) IsEnabled() bool { return s.enabled }
func (s stubFeature) Load(app fiber.Router) error {
	if s.err != nil {
		return s.err
	}
	app.Get("/"+s.name, func(c *fiber.Ctx) error { return c.SendString(s.name) })
	return nil
}

func TestManager_LoadAll(t *testing.T) {
	app := fiber.New()
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "catalog", enabled: true})
	mgr.Register(stubFeature{name: "snapshot", enabled: false})
	mgr.Register(stubFeature{name: "ledger", enabled: true})

	loaded, err := mgr.LoadAll(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog", "ledger"}, loaded)
	assert.Len(t, mgr.Features(), 3)

	resp, err := app.Test(httptest.NewRequest("GET", "/ledger", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/snapshot", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestManager_LoadAllFails(t *testing.T) {
	mgr := loader.NewManager()
	mgr.Register(stubFeature{name: "catalog", enabled: true})
	mgr.Register(stubFeature{name: "broken", enabled: true, err: errors.New("boom")})

	loaded, err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "broken")
	assert.Equal(t, []string{"catalog"}, loaded)
}
