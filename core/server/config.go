package server

// Config holds configuration for the admin HTTP surface.
type Config struct {
	// Port is the port where the admin server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required in the X-API-Key header. Empty disables the admin surface.
	ApiKey string `mapstructure:"api_key" default:""`
}

// Enabled reports whether the admin surface may be started.
func (c Config) Enabled() bool {
	return c.ApiKey != ""
}
