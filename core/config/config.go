package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"loyalty-sync/core/apperr"
	"loyalty-sync/core/database"
	"loyalty-sync/core/logger"
	"loyalty-sync/core/partner"
	"loyalty-sync/core/queue"
	"loyalty-sync/core/server"
	"loyalty-sync/core/storage"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is built once at startup and passed explicitly to every component.
type Config struct {
	// Partner holds the loyalty partner API settings.
	Partner partner.Config `mapstructure:"partner"`
	// Database holds the sales database connection.
	Database database.Config `mapstructure:"database"`
	// Queue selects the failed-turnover queue backend.
	Queue queue.Config `mapstructure:"queue"`
	// Storage holds object storage settings for the storage queue backend.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the admin HTTP surface.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and an env file in path.
// An empty profile reads ".env"; profile "prod" reads ".env.prod".
// Missing or invalid settings are reported as apperr.ErrConfiguration.
func LoadConfig(path, profile string) (*Config, error) {
	if err := loadEnvFile(path, profile); err != nil {
		return nil, apperr.Configuration("load env file", err)
	}

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. PARTNER_URL -> partner.url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, apperr.Configuration("decode settings", err)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the validate tags of every section.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperr.Configuration("validate settings", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s (%s)", envName(fe.Namespace()), fe.Tag()))
	}
	return apperr.Configuration("validate settings", fmt.Errorf("invalid or missing: %s", strings.Join(problems, ", ")))
}

func loadEnvFile(path, profile string) error {
	name := ".env"
	if profile != "" {
		name = ".env." + profile
	}
	envPath := filepath.Join(path, name)

	if _, err := os.Stat(envPath); err != nil {
		// A missing default file is fine (e.g. production with a real environment),
		// a missing profile file is an operator mistake.
		if profile == "" && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Overload(envPath)
}

// envName turns a validator namespace (Config.Partner.URL) into PARTNER_URL.
func envName(namespace string) string {
	t := reflect.TypeOf(Config{})
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 && parts[0] == t.Name() {
		parts = parts[1:]
	}

	keys := make([]string, 0, len(parts))
	for _, part := range parts {
		field, ok := t.FieldByName(part)
		if !ok {
			keys = append(keys, strings.ToUpper(part))
			continue
		}
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			keys = append(keys, strings.ToUpper(tag))
		} else {
			keys = append(keys, strings.ToUpper(part))
		}
		t = field.Type
	}
	return strings.Join(keys, "_")
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
