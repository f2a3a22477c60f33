package database

import (
	"context"
	"fmt"
	"strings"

	"loyalty-sync/core/apperr"

	"gorm.io/gorm"
)

// ColumnInfo describes one column of a table or view.
type ColumnInfo struct {
	Field string
	Type  string
}

// splitTableName separates an optional schema from a table name, so "dbo.Sales" yields
// ("dbo", "Sales"). Bracket and backtick quoting is removed from both parts.
func splitTableName(name string) (schema, table string) {
	unquote := func(s string) string {
		return strings.Trim(strings.TrimSpace(s), "[]`\"")
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		schema = name[:i]
		// database.schema.table keeps only the schema
		if j := strings.LastIndex(schema, "."); j >= 0 {
			schema = schema[j+1:]
		}
		return unquote(schema), unquote(name[i+1:])
	}
	return "", unquote(name)
}

// GetTableColumns retrieves the column definitions for a given table or view.
// tableName may be schema-qualified. Names and types are lower-cased.
func GetTableColumns(ctx context.Context, db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	schema, table := splitTableName(tableName)

	switch db.Dialector.Name() {
	case DriverSQLite:
		// SQLite uses PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		pragma := fmt.Sprintf("PRAGMA table_info('%s')", table)
		if schema != "" {
			pragma = fmt.Sprintf("PRAGMA \"%s\".table_info('%s')", schema, table)
		}
		var sqliteCols []sqliteColumn
		if err := db.WithContext(ctx).Raw(pragma).Scan(&sqliteCols).Error; err != nil {
			return nil, apperr.Query("inspect "+tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{Field: col.Name, Type: col.Type})
		}

	case DriverMySQL:
		type mysqlColumn struct {
			Field string
			Type  string
		}
		from := fmt.Sprintf("`%s`", table)
		if schema != "" {
			from = fmt.Sprintf("`%s`.`%s`", schema, table)
		}
		var mysqlCols []mysqlColumn
		if err := db.WithContext(ctx).Raw("SHOW COLUMNS FROM " + from).Scan(&mysqlCols).Error; err != nil {
			return nil, apperr.Query("inspect "+tableName, err)
		}
		for _, col := range mysqlCols {
			columns = append(columns, ColumnInfo{Field: col.Field, Type: col.Type})
		}

	default:
		// SQL Server exposes views and tables through INFORMATION_SCHEMA
		query := "SELECT COLUMN_NAME AS field, DATA_TYPE AS type FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = ?"
		args := []any{table}
		if schema != "" {
			query = "SELECT COLUMN_NAME AS field, DATA_TYPE AS type FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?"
			args = []any{schema, table}
		}
		if err := db.WithContext(ctx).Raw(query, args...).Scan(&columns).Error; err != nil {
			return nil, apperr.Query("inspect "+tableName, err)
		}
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// MissingColumns returns the required columns that tableName does not have.
// A table that does not exist at all reports every required column as missing.
func MissingColumns(ctx context.Context, db *gorm.DB, tableName string, required []string) ([]string, error) {
	columns, err := GetTableColumns(ctx, db, tableName)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
