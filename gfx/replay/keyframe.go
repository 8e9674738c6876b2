package replay

import (
	"encoding/json"
	"fmt"

	"github.com/RajeshDM/habitat-sim/assets"
	"github.com/RajeshDM/habitat-sim/gfx"
)

// Transform is the wire form of a rigid transform. Rotation is a quaternion
// in (x, y, z, w) component order. Components round-trip bit-for-bit.
type Transform struct {
	Translation [3]float32 `json:"translation"`
	Rotation    [4]float32 `json:"rotation"`
}

// InstanceState is the per-frame state of one render asset instance.
type InstanceState struct {
	// AbsTransform is the instance's absolute pose in world space.
	AbsTransform Transform `json:"absTransform"`
	// SemanticID is the instance's semantic object id.
	SemanticID int `json:"semanticId"`
}

// InstanceCreation pairs a new instance's key with its creation description.
type InstanceCreation struct {
	InstanceKey int                                    `json:"instanceKey"`
	Creation    assets.RenderAssetInstanceCreationInfo `json:"creation"`
}

// StateUpdate pairs an existing instance's key with its new state.
type StateUpdate struct {
	InstanceKey int           `json:"instanceKey"`
	State       InstanceState `json:"state"`
}

// UserTransform is a named transform recorded alongside the scene, such as a
// sensor or agent pose.
type UserTransform struct {
	Name      string    `json:"name"`
	Transform Transform `json:"transform"`
}

// Keyframe is one recorded frame of scene mutations. Fields apply in
// declaration order: loads, creations, deletions, state updates, lights,
// user transforms.
type Keyframe struct {
	Loads          []assets.AssetInfo `json:"loads,omitempty"`
	Creations      []InstanceCreation `json:"creations,omitempty"`
	Deletions      []int              `json:"deletions,omitempty"`
	StateUpdates   []StateUpdate      `json:"stateUpdates,omitempty"`
	LightsChanged  bool               `json:"lightsChanged,omitempty"`
	Lights         gfx.LightSetup     `json:"lights,omitempty"`
	UserTransforms []UserTransform    `json:"userTransforms,omitempty"`
}

// keyframeDocument is the envelope recorded keyframes are wrapped in.
type keyframeDocument struct {
	Keyframes []Keyframe `json:"keyframes"`
}

// KeyframeFromString parses a document holding exactly one keyframe.
//
// Parameters:
//   - data: a JSON document of the form {"keyframes": [keyframe]}
//
// Returns:
//   - Keyframe: the parsed keyframe
//   - error: error if the document is malformed or does not hold exactly one
//     keyframe
func KeyframeFromString(data string) (Keyframe, error) {
	frames, err := KeyframesFromString(data)
	if err != nil {
		return Keyframe{}, err
	}
	if len(frames) != 1 {
		return Keyframe{}, fmt.Errorf("replay: expected exactly 1 keyframe, got %d", len(frames))
	}
	return frames[0], nil
}

// KeyframesFromString parses a document holding zero or more keyframes.
//
// Parameters:
//   - data: a JSON document of the form {"keyframes": [...]}
//
// Returns:
//   - []Keyframe: the parsed keyframes in document order
//   - error: error if the document is malformed
func KeyframesFromString(data string) ([]Keyframe, error) {
	var doc keyframeDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("replay: failed to parse keyframe document: %w", err)
	}
	return doc.Keyframes, nil
}

// String serializes the keyframe into the single-keyframe document form
// accepted by KeyframeFromString.
//
// Returns:
//   - string: the JSON document
//   - error: error if serialization fails
func (k Keyframe) String() (string, error) {
	data, err := json.Marshal(keyframeDocument{Keyframes: []Keyframe{k}})
	if err != nil {
		return "", fmt.Errorf("replay: failed to serialize keyframe: %w", err)
	}
	return string(data), nil
}
