package sensor

import (
	"fmt"

	"github.com/RajeshDM/habitat-sim/scene"
)

// Factory creates and destroys sensors attached to scene-graph nodes.
type Factory struct{}

// CreateSensors creates one sensor per spec, each on its own child node of
// parent, and returns them keyed by UUID.
//
// Parameters:
//   - parent: the node the sensors attach under
//   - specs: the sensor specifications
//
// Returns:
//   - map[string]VisualSensor: the created sensors keyed by UUID
//   - error: error if a spec is invalid or a UUID repeats
func (f Factory) CreateSensors(parent *scene.Node, specs []Spec) (map[string]VisualSensor, error) {
	if parent == nil {
		panic("sensor: CreateSensors called with nil parent node")
	}
	sensors := make(map[string]VisualSensor, len(specs))
	for _, spec := range specs {
		if spec.UUID == "" {
			f.closeAll(sensors)
			return nil, fmt.Errorf("sensor: sensor spec has empty uuid")
		}
		if _, exists := sensors[spec.UUID]; exists {
			f.closeAll(sensors)
			return nil, fmt.Errorf("sensor: duplicate sensor uuid %q", spec.UUID)
		}
		sensors[spec.UUID] = newVisualSensor(parent, spec)
	}
	return sensors, nil
}

// DeleteSensor closes the sensor and removes it from the suite.
//
// Parameters:
//   - sensors: the sensor suite the sensor belongs to
//   - uuid: the sensor to delete
//
// Returns:
//   - bool: true if the sensor existed
func (f Factory) DeleteSensor(sensors map[string]VisualSensor, uuid string) bool {
	s, ok := sensors[uuid]
	if !ok {
		return false
	}
	s.Close()
	delete(sensors, uuid)
	return true
}

func (f Factory) closeAll(sensors map[string]VisualSensor) {
	for _, s := range sensors {
		s.Close()
	}
}
