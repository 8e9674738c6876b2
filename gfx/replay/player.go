package replay

import (
	"log"

	"github.com/goki/mat32"

	"github.com/RajeshDM/habitat-sim/assets"
	"github.com/RajeshDM/habitat-sim/common"
	"github.com/RajeshDM/habitat-sim/scene"
)

// Player applies recorded keyframes to a scene through a SceneMutationSink.
// It tracks the instances it created by their recorded keys, so later
// keyframes can update or delete them.
type Player struct {
	sink SceneMutationSink

	// assetInfos caches asset descriptions seen in keyframe loads, keyed by
	// file path, so creations can reference assets loaded in earlier frames.
	assetInfos map[string]assets.AssetInfo

	// instances maps recorded instance keys to the nodes the sink created.
	instances map[int]*scene.Node

	userTransforms map[string]common.Transform

	numKeyframes int
}

// NewPlayer creates a Player that replays keyframes into the given sink.
//
// Parameters:
//   - sink: the scene mutation sink, must not be nil
//
// Returns:
//   - *Player: the new player
func NewPlayer(sink SceneMutationSink) *Player {
	if sink == nil {
		panic("replay: NewPlayer called with nil sink")
	}
	return &Player{
		sink:           sink,
		assetInfos:     make(map[string]assets.AssetInfo),
		instances:      make(map[int]*scene.Node),
		userTransforms: make(map[string]common.Transform),
	}
}

// NumKeyframes returns the number of keyframes the player currently holds.
// For a player fed through SetSingleKeyframe this is 0 before the first
// keyframe and 1 afterwards.
//
// Returns:
//   - int: the keyframe count
func (p *Player) NumKeyframes() int {
	return p.numKeyframes
}

// SetSingleKeyframe replaces the player's keyframe with the given one and
// applies its mutations. Application is incremental: instances created by
// earlier keyframes survive unless this keyframe's deletions name them.
// Faults in individual mutations (unknown assets, stale instance keys,
// failed creations) are logged and skipped so one bad record does not
// abort the frame.
//
// Parameters:
//   - keyframe: the keyframe to apply
func (p *Player) SetSingleKeyframe(keyframe Keyframe) {
	for _, info := range keyframe.Loads {
		p.assetInfos[info.FilePath] = info
	}

	for _, creation := range keyframe.Creations {
		info, ok := p.assetInfos[creation.Creation.FilePath]
		if !ok {
			log.Printf("replay: creation of instance %d references unloaded asset %q, skipping", creation.InstanceKey, creation.Creation.FilePath)
			continue
		}
		if _, exists := p.instances[creation.InstanceKey]; exists {
			log.Printf("replay: instance key %d already exists, skipping creation", creation.InstanceKey)
			continue
		}
		node, err := p.sink.InstantiateRenderAsset(info, creation.Creation)
		if err != nil {
			log.Printf("replay: failed to instantiate %q for instance %d: %v", creation.Creation.FilePath, creation.InstanceKey, err)
			continue
		}
		p.instances[creation.InstanceKey] = node
	}

	for _, key := range keyframe.Deletions {
		node, ok := p.instances[key]
		if !ok {
			log.Printf("replay: deletion references unknown instance key %d, skipping", key)
			continue
		}
		node.Remove()
		delete(p.instances, key)
	}

	for _, update := range keyframe.StateUpdates {
		node, ok := p.instances[update.InstanceKey]
		if !ok {
			log.Printf("replay: state update references unknown instance key %d, skipping", update.InstanceKey)
			continue
		}
		node.SetTranslation(common.Vec3FromArray(update.State.AbsTransform.Translation))
		node.SetRotation(common.QuatFromArray(update.State.AbsTransform.Rotation))
		node.SetSemanticID(update.State.SemanticID)
	}

	if keyframe.LightsChanged {
		p.sink.SetLights(keyframe.Lights)
	}

	for _, ut := range keyframe.UserTransforms {
		p.userTransforms[ut.Name] = common.Transform{
			Translation: common.Vec3FromArray(ut.Transform.Translation),
			Rotation:    common.QuatFromArray(ut.Transform.Rotation),
		}
	}

	p.numKeyframes = 1
}

// UserTransform looks up a named transform from the applied keyframe.
//
// Parameters:
//   - name: the recorded transform name
//
// Returns:
//   - mat32.Vec3: the transform's translation
//   - mat32.Quat: the transform's rotation
//   - bool: true if a transform with that name exists
func (p *Player) UserTransform(name string) (mat32.Vec3, mat32.Quat, bool) {
	t, ok := p.userTransforms[name]
	if !ok {
		return mat32.Vec3{}, common.QuatIdentity(), false
	}
	return t.Translation, t.Rotation, true
}

// NumInstances returns how many replayed instances are currently alive.
//
// Returns:
//   - int: the live instance count
func (p *Player) NumInstances() int {
	return len(p.instances)
}

// Close removes every instance the player created and drops its caches. The
// player must not be used afterwards.
func (p *Player) Close() {
	for key, node := range p.instances {
		node.Remove()
		delete(p.instances, key)
	}
	p.assetInfos = nil
	p.userTransforms = nil
	p.numKeyframes = 0
}
