// Package loader registers HTTP features and mounts their routes.
//
// Each feature package (achievements, system, export) exposes a Feature built
// from its service and handler:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll skips disabled ones
// and stops at the first Load error.
package loader
