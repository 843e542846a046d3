package checks

import (
	"fmt"
	"strings"

	"store-inventory/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a database schema check.
type SchemaReport struct {
	Driver  string                 `json:"driver"`
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema compares the live tables with the persisted models.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Driver:  db.Dialector.Name(),
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range database.Models() {
		table, expected, err := database.ExpectedSchema(db, model)
		if err != nil {
			return nil, err
		}

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, TypeMismatches: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[table] = tbl
			continue
		}

		actualMap := make(map[string]database.ColumnInfo, len(actual))
		for _, col := range actual {
			actualMap[col.Field] = col
		}

		for _, col := range expected {
			act, ok := actualMap[col.Field]
			if !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, col.Field)
				tbl.Status = "error"
				report.Matched = false
				continue
			}
			// Soft check: mysql reports text columns as text, mediumtext, longtext.
			if col.Type != "" && !strings.Contains(act.Type, col.Type) {
				tbl.TypeMismatches = append(tbl.TypeMismatches, fmt.Sprintf("%s: expected %s, got %s", col.Field, col.Type, act.Type))
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
