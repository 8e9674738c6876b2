package assets

import (
	"fmt"
	"sync"

	"github.com/goki/mat32"

	"github.com/RajeshDM/habitat-sim/gfx"
	"github.com/RajeshDM/habitat-sim/metadata"
	"github.com/RajeshDM/habitat-sim/scene"
)

// ResourceManager tracks loaded render assets and light setups, and
// instantiates assets as drawable nodes in scene graphs.
type ResourceManager interface {
	// LoadRenderAsset registers an asset description. Loading the same file
	// path again replaces the registration.
	//
	// Parameters:
	//   - info: the asset description
	//
	// Returns:
	//   - error: error if the description has no file path
	LoadRenderAsset(info AssetInfo) error

	// AssetInfo returns the registered description for a file path.
	//
	// Parameters:
	//   - filePath: the asset's file path
	//
	// Returns:
	//   - AssetInfo: the registered description
	//   - bool: true if the asset is registered
	AssetInfo(filePath string) (AssetInfo, bool)

	// LoadAndCreateRenderAssetInstance loads the asset named by creation if
	// needed and instantiates it in every scene graph listed in sceneIDs.
	// Duplicate ids in the list create a single instance. The node returned
	// belongs to the first listed graph.
	//
	// Parameters:
	//   - info: the asset description to (re)register
	//   - creation: how to instantiate the asset
	//   - sceneManager: the manager owning the target graphs
	//   - sceneIDs: graphs to instantiate into, first entry is primary
	//
	// Returns:
	//   - *scene.Node: the instance node in the first listed graph
	//   - error: error if the inputs are inconsistent
	LoadAndCreateRenderAssetInstance(info AssetInfo, creation RenderAssetInstanceCreationInfo, sceneManager scene.Manager, sceneIDs []int) (*scene.Node, error)

	// SetLightSetup registers a light setup under the given key, replacing
	// any previous setup with that key.
	//
	// Parameters:
	//   - setup: the lights
	//   - key: the setup's registry key
	SetLightSetup(setup gfx.LightSetup, key string)

	// LightSetup returns the light setup registered under key.
	//
	// Parameters:
	//   - key: the setup's registry key
	//
	// Returns:
	//   - gfx.LightSetup: the registered lights
	//   - bool: true if a setup is registered under key
	LightSetup(key string) (gfx.LightSetup, bool)
}

// resourceManager is the implementation of the ResourceManager interface.
type resourceManager struct {
	mu sync.RWMutex

	mediator *metadata.Mediator

	// loadedAssets caches asset registrations by file path, so repeat
	// keyframe loads of the same asset are cheap.
	loadedAssets map[string]AssetInfo

	lightSetups map[string]gfx.LightSetup
}

var _ ResourceManager = &resourceManager{}

// NewResourceManager creates a ResourceManager bound to the metadata
// mediator. The mediator's configuration must request a renderer, since a
// resource manager without one has nothing to instantiate assets for.
//
// Parameters:
//   - mediator: the metadata mediator for the active dataset
//
// Returns:
//   - ResourceManager: the new resource manager
//   - error: error if the configuration does not request a renderer
func NewResourceManager(mediator *metadata.Mediator) (ResourceManager, error) {
	if mediator == nil {
		panic("assets: NewResourceManager called with nil mediator")
	}
	if !mediator.CreateRenderer() {
		return nil, fmt.Errorf("assets: resource manager requires a configuration with CreateRenderer set")
	}
	return &resourceManager{
		mediator:     mediator,
		loadedAssets: make(map[string]AssetInfo),
		lightSetups: map[string]gfx.LightSetup{
			gfx.DefaultLightSetupKey: gfx.NoLights(),
		},
	}, nil
}

func (rm *resourceManager) LoadRenderAsset(info AssetInfo) error {
	if info.FilePath == "" {
		return fmt.Errorf("assets: asset info has no file path")
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.loadedAssets[info.FilePath] = info
	return nil
}

func (rm *resourceManager) AssetInfo(filePath string) (AssetInfo, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	info, ok := rm.loadedAssets[filePath]
	return info, ok
}

func (rm *resourceManager) LoadAndCreateRenderAssetInstance(info AssetInfo, creation RenderAssetInstanceCreationInfo, sceneManager scene.Manager, sceneIDs []int) (*scene.Node, error) {
	if sceneManager == nil {
		panic("assets: LoadAndCreateRenderAssetInstance called with nil scene manager")
	}
	if len(sceneIDs) == 0 {
		return nil, fmt.Errorf("assets: no scene ids given for instance of %q", creation.FilePath)
	}
	if creation.FilePath == "" {
		return nil, fmt.Errorf("assets: instance creation info has no file path")
	}
	if info.FilePath != creation.FilePath {
		return nil, fmt.Errorf("assets: asset info %q does not match creation info %q", info.FilePath, creation.FilePath)
	}
	if err := rm.LoadRenderAsset(info); err != nil {
		return nil, err
	}

	var primary *scene.Node
	for i, id := range dedupSceneIDs(sceneIDs) {
		graph := sceneManager.SceneGraph(id)
		node := graph.RootNode().CreateChild()
		if creation.Scale != nil {
			node.SetScale(mat32.Vec3{X: creation.Scale[0], Y: creation.Scale[1], Z: creation.Scale[2]})
		}
		drawable := &scene.Drawable{
			AssetPath:  creation.FilePath,
			IsRGBD:     creation.IsRGBD,
			IsSemantic: creation.IsSemantic,
		}
		if i > 0 {
			// Secondary graphs are semantic-only mirrors of the instance.
			drawable.IsRGBD = false
			drawable.IsSemantic = true
		}
		node.SetDrawable(drawable)
		if primary == nil {
			primary = node
		}
	}
	return primary, nil
}

func (rm *resourceManager) SetLightSetup(setup gfx.LightSetup, key string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.lightSetups[key] = setup
}

func (rm *resourceManager) LightSetup(key string) (gfx.LightSetup, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	setup, ok := rm.lightSetups[key]
	return setup, ok
}

// dedupSceneIDs drops repeated ids while preserving first-seen order. The id
// list commonly aliases the color and semantic graphs to the same graph.
func dedupSceneIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
