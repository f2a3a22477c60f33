package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

func TestGetTableColumns(t *testing.T) {
	// Setup In-Memory DB
	cfg := Config{
		Driver: DriverSQLite,
		Name:   ":memory:",
	}
	ctx := context.Background()
	db, err := Connect(ctx, cfg)
	require.NoError(t, err)
	defer Close(db)

	err = db.Exec("CREATE TABLE SaleslinesYesterday (SALESID TEXT, ITEMID TEXT, LINEAMOUNT NUMERIC)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(ctx, db, "SaleslinesYesterday")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "text", colMap["salesid"])
	assert.Equal(t, "numeric", colMap["lineamount"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := GetTableColumns(ctx, db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Exec("CREATE TABLE CustomersLoyalty (customerId TEXT, status TEXT)").Error)

	missing, err := MissingColumns(ctx, db, "CustomersLoyalty", []string{"customerId", "status", "wholesalerId"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wholesalerId"}, missing)

	missing, err = MissingColumns(ctx, db, "Nope", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, missing)
}

func TestSplitTableName(t *testing.T) {
	tests := []struct {
		name   string
		schema string
		table  string
	}{
		{"SaleslinesYesterday", "", "SaleslinesYesterday"},
		{"dbo.SaleslinesYesterday", "dbo", "SaleslinesYesterday"},
		{"[dbo].[SaleslinesYesterday]", "dbo", "SaleslinesYesterday"},
		{"AX.dbo.SaleslinesYesterday", "dbo", "SaleslinesYesterday"},
		{"`loyalty`.`CustomersLoyalty`", "loyalty", "CustomersLoyalty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, table := splitTableName(tt.name)
			assert.Equal(t, tt.schema, schema)
			assert.Equal(t, tt.table, table)
		})
	}
}

func setupSQLServerMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(sqlserver.New(sqlserver.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestGetTableColumns_SQLServerSchemaQualified(t *testing.T) {
	db, mock := setupSQLServerMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2")).
		WithArgs("dbo", "SaleslinesYesterday").
		WillReturnRows(sqlmock.NewRows([]string{"field", "type"}).
			AddRow("SALESID", "nvarchar").
			AddRow("LINEAMOUNT", "numeric"))

	missing, err := MissingColumns(context.Background(), db, "dbo.SaleslinesYesterday", []string{"SALESID", "LINEAMOUNT", "ITEMID"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ITEMID"}, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_SQLServerUnqualified(t *testing.T) {
	db, mock := setupSQLServerMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = @p1")).
		WithArgs("SaleslinesYesterday").
		WillReturnRows(sqlmock.NewRows([]string{"field", "type"}).AddRow("SALESID", "nvarchar"))

	columns, err := GetTableColumns(context.Background(), db, "SaleslinesYesterday")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{{Field: "salesid", Type: "nvarchar"}}, columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_SQLiteSchemaQualified(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(ctx, Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Exec("CREATE TABLE CustomersLoyalty (customerId TEXT)").Error)

	columns, err := GetTableColumns(ctx, db, "main.CustomersLoyalty")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{{Field: "customerid", Type: "text"}}, columns)
}
