package gfx

// LightPositionModel identifies the coordinate frame a light's vector is
// expressed in.
type LightPositionModel int

const (
	// LightPositionGlobal places the light in world space.
	LightPositionGlobal LightPositionModel = iota

	// LightPositionCamera places the light relative to the rendering camera.
	LightPositionCamera

	// LightPositionObject places the light relative to the object being lit.
	LightPositionObject
)

// LightInfo describes a single light source in a light setup.
type LightInfo struct {
	// Vector is the light's position (w = 1) or direction (w = 0).
	Vector [4]float32 `json:"vector"`

	// Color is the light's RGB color, linear space.
	Color [3]float32 `json:"color"`

	// Model selects the coordinate frame of Vector.
	Model LightPositionModel `json:"model"`
}

// LightSetup is an ordered collection of lights applied together. The
// resource manager owns the process-wide setups, keyed by name; replayed
// keyframes overwrite the default setup.
type LightSetup []LightInfo

// DefaultLightSetupKey is the key of the setup applied to render asset
// instances that do not name one explicitly.
const DefaultLightSetupKey = ""

// NoLights returns an empty light setup. Rendering with no lights leaves
// flat-shaded assets fully visible and lit assets black.
//
// Returns:
//   - LightSetup: an empty setup
func NoLights() LightSetup {
	return LightSetup{}
}
