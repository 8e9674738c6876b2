// Package sim provides the batch renderer: a fixed pool of independent
// replay-driven environments rendered through one shared GPU context.
package sim

import (
	"github.com/RajeshDM/habitat-sim/sensor"
)

// Config describes a batch renderer to construct. It is immutable after
// construction.
type Config struct {
	// NumEnvironments is the number of parallel environments. Must be
	// positive.
	NumEnvironments int

	// SensorSpecifications lists the sensors attached to every environment.
	// UUIDs must be unique within the list.
	SensorSpecifications []sensor.Spec

	// GPUDeviceID selects the GPU, or gfx.CPUDeviceID for a software
	// fallback adapter. Ignored when a context is already current.
	GPUDeviceID int

	// ForceSeparateSemanticSceneGraph gives each environment a second scene
	// graph for semantic annotations instead of aliasing the primary one.
	ForceSeparateSemanticSceneGraph bool

	// LeaveContextWithBackgroundRenderer keeps the GPU context current on
	// the background render thread between frames.
	LeaveContextWithBackgroundRenderer bool
}

// DefaultConfig returns a Config for a single environment on the default
// GPU with no sensors.
//
// Returns:
//   - Config: the default configuration
func DefaultConfig() Config {
	return Config{
		NumEnvironments: 1,
		GPUDeviceID:     0,
	}
}
