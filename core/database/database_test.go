package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memoryConfig = Config{Driver: DriverSQLite, Name: ":memory:"}

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999,
			User:           "root",
			Password:       "wrongpassword",
			Name:           "store_inventory",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("SQLite", func(t *testing.T) {
		db, err := Connect(memoryConfig)
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, db.Dialector.Name())
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})
}

func TestMigrate(t *testing.T) {
	db, err := Connect(memoryConfig)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, table := range []string{"inventory_items", "withdrawal_requests", "ledger_entries"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
