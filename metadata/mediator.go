// package metadata holds the configuration context that the resource manager
// is bound to. The batch renderer never loads simulator state from disk; it
// constructs a standalone, renderer-capable mediator instead.
package metadata

// SimulatorConfiguration describes how the owning system was configured.
// Only the fields relevant to standalone rendering are modeled here.
type SimulatorConfiguration struct {
	// CreateRenderer requests a renderer-capable configuration. The batch
	// renderer always sets this; resource managers built from a mediator
	// without it refuse to create render asset instances.
	CreateRenderer bool

	// SceneDatasetConfigFile optionally names a dataset description file.
	// Empty for standalone replay rendering.
	SceneDatasetConfigFile string
}

// Mediator carries an immutable SimulatorConfiguration to the components
// that need it. It is the single source of configuration truth shared by the
// resource manager and anything constructed from it.
type Mediator struct {
	cfg SimulatorConfiguration
}

// NewMediator creates a Mediator from the given configuration.
//
// Parameters:
//   - cfg: the simulator configuration to carry
//
// Returns:
//   - *Mediator: the new mediator
func NewMediator(cfg SimulatorConfiguration) *Mediator {
	return &Mediator{cfg: cfg}
}

// Configuration returns the carried configuration.
//
// Returns:
//   - SimulatorConfiguration: the configuration value
func (m *Mediator) Configuration() SimulatorConfiguration {
	return m.cfg
}

// CreateRenderer reports whether this mediator was configured for rendering.
//
// Returns:
//   - bool: true if renderer-capable
func (m *Mediator) CreateRenderer() bool {
	return m.cfg.CreateRenderer
}
