package integrity

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"store-inventory/core/catalog"
	"store-inventory/core/database"
	"store-inventory/core/ledger"
	"store-inventory/core/reconcile"
	"store-inventory/core/requests"
	"store-inventory/core/storage/mocks"
	"store-inventory/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failures int64

func (f failures) Failed() int64 { return int64(f) }

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Seed([]catalog.Item{
		{ID: "item-1", Name: "A", QuantityOnHand: 4, Baseline: 4},
		{ID: "item-2", Name: "B", QuantityOnHand: 2, Baseline: 2},
	}))
	return c
}

func setupTestApp(t *testing.T, opts Options) (*fiber.App, *catalog.Catalog) {
	t.Helper()
	c := newCatalog(t)
	engine := reconcile.NewEngine(c, requests.NewStore(), ledger.New())
	app := fiber.New()
	require.NoError(t, NewFeature(engine, opts, zap.NewNop()).Load(app))
	return app, c
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandleIntegrityCheck_Unconfigured(t *testing.T) {
	app, _ := setupTestApp(t, Options{})

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["conservation"].(map[string]any)["balanced"])
	assert.Equal(t, "skipped", body["schema"].(map[string]any)["status"])
	assert.Equal(t, "skipped", body["storage"].(map[string]any)["status"])
	assert.Equal(t, "skipped", body["journal"].(map[string]any)["status"])
}

func TestHandleIntegrityCheck_Configured(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "inventory").Return(true, nil)
	ch := make(chan minio.ObjectInfo)
	close(ch)
	client.On("ListObjects", mock.Anything, "inventory", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	app, _ := setupTestApp(t, Options{DB: db, Client: client, Bucket: "inventory", Prefix: "snapshots/", Journal: failures(2)})

	status, body := getJSON(t, app, "/integrity")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["schema"].(map[string]any)["matched"])
	assert.Equal(t, true, body["storage"].(map[string]any)["exists"])
	assert.EqualValues(t, 2, body["journal"].(map[string]any)["failed_writes"])
}

func TestHandleConservationCheck(t *testing.T) {
	app, c := setupTestApp(t, Options{})
	_, err := c.AdjustStock("item-2", -1)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/conservation", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report checks.ConservationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.False(t, report.Balanced)
	assert.Equal(t, 2, report.Items)
	require.Len(t, report.Unbalanced, 1)
	assert.Equal(t, "item-2", report.Unbalanced[0].ItemID)
}

func TestHandleSchemaCheck_NoDatabase(t *testing.T) {
	app, _ := setupTestApp(t, Options{})
	status, _ := getJSON(t, app, "/integrity/schema")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestHandleStorageCheck_Fix(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "inventory").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "inventory", mock.Anything).Return(nil)

	app, _ := setupTestApp(t, Options{Client: client, Bucket: "inventory"})

	status, body := getJSON(t, app, "/integrity/storage")
	assert.Equal(t, 200, status)
	assert.Equal(t, false, body["exists"])
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)

	status, body = getJSON(t, app, "/integrity/storage?fix=true")
	assert.Equal(t, 200, status)
	assert.Equal(t, "fixed", body["status"])
	client.AssertCalled(t, "MakeBucket", mock.Anything, "inventory", mock.Anything)
}

func TestLoader(t *testing.T) {
	engine := reconcile.NewEngine(catalog.New(), requests.NewStore(), ledger.New())
	feature := NewFeature(engine, Options{}, zap.NewNop())

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}
