// Package config provides configuration management for loyalty-sync.
//
// It utilizes Viper for reading environment variables and godotenv for env files, then
// validates the result with go-playground/validator before any network or database call.
//
// # Profiles
//
// LoadConfig(".", "") reads ".env" when present; LoadConfig(".", "prod") requires ".env.prod".
// Values already in the process environment are overridden by the file, matching how the job
// is run from a scheduler with a per-environment file.
//
// # Configuration Structure
//
//   - Partner: partner API URL, credentials, request key, wholesaler, country, batch sizes
//   - Database: sales database driver, host, credentials, customer table, salesline view
//   - Queue: failed-turnover queue backend (file or storage)
//   - Storage: S3/MinIO settings for the storage queue backend
//   - Log: logging level and format
//   - Server: admin HTTP surface port and API key
//
// Keys map to environment variables by upper-casing and joining with "_":
// partner.request_key is PARTNER_REQUEST_KEY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", profile)
//	if err != nil {
//	    return err // apperr.ErrConfiguration
//	}
package config
