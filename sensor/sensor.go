// Package sensor provides visual sensor specifications and the scene-graph
// backed sensors created from them. A sensor owns a node in its environment's
// scene graph; posing the sensor means posing that node.
package sensor

import (
	"fmt"

	"github.com/RajeshDM/habitat-sim/common"
	"github.com/RajeshDM/habitat-sim/gfx"
	"github.com/RajeshDM/habitat-sim/scene"
)

// Type identifies what a visual sensor observes.
type Type int

const (
	// TypeColor observes the RGB appearance of the scene.
	TypeColor Type = iota
	// TypeDepth observes per-pixel distance from the sensor.
	TypeDepth
	// TypeSemantic observes per-pixel semantic instance ids.
	TypeSemantic
)

// String returns the lower-case name of the sensor type.
func (t Type) String() string {
	switch t {
	case TypeColor:
		return "color"
	case TypeDepth:
		return "depth"
	case TypeSemantic:
		return "semantic"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Spec describes one visual sensor to create. UUID must be unique within a
// sensor suite; Position and Orientation give the sensor's initial pose
// relative to its parent node.
type Spec struct {
	UUID        string
	SensorType  Type
	Resolution  [2]int
	Position    [3]float32
	Orientation [3]float32
}

// Sensor is the base interface for all sensors.
type Sensor interface {
	// UUID returns the sensor's unique identifier within its suite.
	//
	// Returns:
	//   - string: the sensor's UUID
	UUID() string

	// Node returns the scene-graph node the sensor is attached to. Setting
	// this node's translation and rotation poses the sensor.
	//
	// Returns:
	//   - *scene.Node: the sensor's node
	Node() *scene.Node

	// Close detaches the sensor's node from its scene graph and destroys
	// any render target the sensor created. Safe to call once.
	Close()
}

// VisualSensor is a sensor that renders into an offscreen target.
type VisualSensor interface {
	Sensor

	// SensorType returns what this sensor observes.
	//
	// Returns:
	//   - Type: the sensor type
	SensorType() Type

	// Resolution returns the sensor's framebuffer size.
	//
	// Returns:
	//   - [2]int: width and height in pixels
	Resolution() [2]int

	// RenderTarget returns the sensor's offscreen target, creating it on the
	// given renderer on first use. The target is reused across frames.
	//
	// Parameters:
	//   - renderer: the renderer owning the GPU device
	//
	// Returns:
	//   - *gfx.RenderTarget: the sensor's color target
	//   - error: error if target creation fails
	RenderTarget(renderer gfx.Renderer) (*gfx.RenderTarget, error)
}

// visualSensor is the implementation of the VisualSensor interface.
type visualSensor struct {
	spec   Spec
	node   *scene.Node
	target *gfx.RenderTarget
	closed bool
}

var _ VisualSensor = &visualSensor{}

// newVisualSensor creates a sensor node under parent and poses it from the
// spec's position and XYZ Euler orientation.
func newVisualSensor(parent *scene.Node, spec Spec) *visualSensor {
	node := parent.CreateChild()
	node.SetTranslation(common.Vec3FromArray(spec.Position))
	node.SetRotation(common.QuatFromEuler(spec.Orientation))
	return &visualSensor{
		spec: spec,
		node: node,
	}
}

func (s *visualSensor) UUID() string {
	return s.spec.UUID
}

func (s *visualSensor) Node() *scene.Node {
	return s.node
}

func (s *visualSensor) SensorType() Type {
	return s.spec.SensorType
}

func (s *visualSensor) Resolution() [2]int {
	return s.spec.Resolution
}

func (s *visualSensor) RenderTarget(renderer gfx.Renderer) (*gfx.RenderTarget, error) {
	if s.target != nil {
		return s.target, nil
	}
	width, height := s.spec.Resolution[0], s.spec.Resolution[1]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sensor: sensor %q has invalid resolution %dx%d", s.spec.UUID, width, height)
	}
	target, err := renderer.CreateRenderTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("sensor: failed to create render target for sensor %q: %w", s.spec.UUID, err)
	}
	s.target = target
	return s.target, nil
}

func (s *visualSensor) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.target != nil {
		s.target.Destroy()
		s.target = nil
	}
	if s.node != nil {
		s.node.Remove()
		s.node = nil
	}
}
