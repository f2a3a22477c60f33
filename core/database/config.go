package database

// Supported drivers.
const (
	DriverSQLServer = "sqlserver"
	DriverMySQL     = "mysql"
	DriverSQLite    = "sqlite"
)

// Config holds configuration for the sales database connection.
type Config struct {
	// Driver is the database driver (sqlserver, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"sqlserver" validate:"oneof=sqlserver mysql sqlite"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"" validate:"required_unless=Driver sqlite"`
	// Port is the database port. Zero selects the driver default.
	Port int `mapstructure:"port" default:"0" validate:"gte=0"`
	// User is the database user.
	User string `mapstructure:"user" default:""`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name (file path for sqlite).
	Name string `mapstructure:"name" default:"" validate:"required"`
	// TimeoutSeconds bounds connection setup and every query.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60" validate:"gte=0"`
	// CustomerTable is the local cache of loyalty-enrolled customers.
	CustomerTable string `mapstructure:"customer_table" default:"CustomersLoyalty" validate:"required"`
	// SaleslineView is the view returning yesterday's sales lines.
	SaleslineView string `mapstructure:"salesline_view" default:"SaleslinesYesterday" validate:"required"`
}
