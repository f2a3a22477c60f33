package partner

import "time"

// Config holds the loyalty partner API settings.
type Config struct {
	// URL is the API base URL.
	URL string `mapstructure:"url" default:"" validate:"required,url"`
	// Username is the basic auth user.
	Username string `mapstructure:"username" default:"" validate:"required"`
	// Password is the basic auth password.
	Password string `mapstructure:"password" default:"" validate:"required"`
	// RequestKey is sent in the RequestKey header on every call.
	RequestKey string `mapstructure:"request_key" default:"" validate:"required"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60" validate:"gte=0"`
	// TestMode asks the partner to validate bookings without crediting points.
	TestMode bool `mapstructure:"test_mode" default:"false"`
	// Wholesaler is our wholesaler id at the partner.
	Wholesaler string `mapstructure:"wholesaler" default:"" validate:"required"`
	// Country is the ISO country code bookings and product lookups are made for.
	Country string `mapstructure:"country" default:"" validate:"required,len=2"`
	// BatchSize is the number of turnovers per booking request.
	BatchSize int `mapstructure:"batch_size" default:"100" validate:"gt=0"`
	// ProductBatchSize is the number of product codes per eligibility request.
	ProductBatchSize int `mapstructure:"product_batch_size" default:"300" validate:"gt=0,lte=300"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
	// RateLimitPerMin caps requests per minute; 0 means unlimited.
	RateLimitPerMin int `mapstructure:"rate_limit_per_min" default:"0" validate:"gte=0"`
}

// DefaultTimeout is applied when the configuration leaves the timeout unset.
const DefaultTimeout = 60 * time.Second

// Timeout returns the configured request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
