package checks

import (
	"testing"

	"store-inventory/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestCheckSchema_Migrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Equal(t, "sqlite", report.Driver)
	assert.Len(t, report.Tables, 3)
}

func TestCheckSchema_MissingTables(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, "missing", report.Tables["ledger_entries"].Status)
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	items := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("name", "varchar(255)", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `inventory_items`").WillReturnRows(items)

	reqs := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(64)", "NO", "PRI", nil, "").
		AddRow("remarks", "int(11)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `withdrawal_requests`").WillReturnRows(reqs)

	mock.ExpectQuery("SHOW COLUMNS FROM `ledger_entries`").WillReturnError(assert.AnError)

	report, err := CheckSchema(db)
	require.NoError(t, err)
	assert.False(t, report.Matched)

	assert.Contains(t, report.Tables["inventory_items"].MissingColumns, "quantity_on_hand")
	assert.Contains(t, report.Tables["withdrawal_requests"].TypeMismatches, "remarks: expected text, got int(11)")
	assert.Len(t, report.Errors, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckSchema_NilDB(t *testing.T) {
	_, err := CheckSchema(nil)
	assert.Error(t, err)
}
