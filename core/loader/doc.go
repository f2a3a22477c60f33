// Package loader registers and loads the modules of the admin surface.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order and mounts the enabled ones with LoadAll.
package loader
