// Package replay plays back recorded scene keyframes. A keyframe is a
// self-contained description of asset loads, instance creations and
// deletions, instance state updates, lighting changes, and named user
// transforms; a Player applies keyframes to a scene through a
// SceneMutationSink.
package replay

import (
	"github.com/RajeshDM/habitat-sim/assets"
	"github.com/RajeshDM/habitat-sim/gfx"
	"github.com/RajeshDM/habitat-sim/scene"
)

// SceneMutationSink receives the scene mutations a Player replays. It
// decouples playback from where instances actually live, so one player can
// drive an environment in a simulator while another drives a recording stub
// in tests.
type SceneMutationSink interface {
	// InstantiateRenderAsset creates one instance of a render asset and
	// returns its scene-graph node.
	//
	// Parameters:
	//   - info: the asset description
	//   - creation: how to instantiate the asset
	//
	// Returns:
	//   - *scene.Node: the instance node
	//   - error: error if the instance cannot be created
	InstantiateRenderAsset(info assets.AssetInfo, creation assets.RenderAssetInstanceCreationInfo) (*scene.Node, error)

	// SetLights replaces the active light setup.
	//
	// Parameters:
	//   - setup: the new lights
	SetLights(setup gfx.LightSetup)
}
