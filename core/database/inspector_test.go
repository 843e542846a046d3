package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// PRAGMA table_info returns no rows for a missing table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("ID", "VARCHAR(64)", "NO", "PRI", nil, "").
		AddRow("quantity_on_hand", "bigint", "NO", "", "0", "")
	mock.ExpectQuery("SHOW COLUMNS FROM `inventory_items`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "inventory_items")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "varchar(64)", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpectedSchema(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	table, cols, err := ExpectedSchema(db, &LedgerEntryModel{})
	require.NoError(t, err)
	assert.Equal(t, "ledger_entries", table)

	byName := make(map[string]string)
	for _, c := range cols {
		byName[c.Field] = c.Type
	}
	assert.Contains(t, byName, "seq")
	assert.Contains(t, byName, "request_id")
	assert.Equal(t, "text", byName["remarks"])

	// The migrated schema matches the models.
	require.NoError(t, Migrate(db))
	live, err := GetTableColumns(db, table)
	require.NoError(t, err)
	var names []string
	for _, c := range live {
		names = append(names, c.Field)
	}
	assert.ElementsMatch(t, keys(byName), names)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
