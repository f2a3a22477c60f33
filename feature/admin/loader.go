package admin

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the admin feature. It is only enabled when an API key is configured.
func NewFeature(queue FailedQueue, retrier Retrier, checks map[string]Check, apiKey string, logger *zap.Logger) *Feature {
	svc := NewService(queue, retrier, checks, logger)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: apiKey != ""}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "admin"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
