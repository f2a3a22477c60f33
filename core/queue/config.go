package queue

// Backends.
const (
	BackendFile    = "file"
	BackendStorage = "storage"
)

// Config selects and locates the durable failed-turnover queue.
type Config struct {
	// Backend is where entries are kept (file, storage).
	Backend string `mapstructure:"backend" default:"file" validate:"oneof=file storage"`
	// Path is the JSON file used by the file backend.
	Path string `mapstructure:"path" default:"tmp/failed_turnovers.json" validate:"required_if=Backend file"`
	// Object is the object key used by the storage backend.
	Object string `mapstructure:"object" default:"failed/turnovers.json" validate:"required_if=Backend storage"`
}
