package sim

import (
	"fmt"
	"log"
	"sort"

	"github.com/RajeshDM/habitat-sim/assets"
	"github.com/RajeshDM/habitat-sim/gfx"
	"github.com/RajeshDM/habitat-sim/gfx/replay"
	"github.com/RajeshDM/habitat-sim/metadata"
	"github.com/RajeshDM/habitat-sim/scene"
	"github.com/RajeshDM/habitat-sim/sensor"
)

// envRecord is the per-environment state owned by the batch renderer. Scene
// graphs and sensors are owned by their subsystems; the record holds handles
// and triggers their explicit release at teardown.
type envRecord struct {
	player           *replay.Player
	sceneID          int
	semanticSceneID  int
	sensorParentNode *scene.Node
	sensors          map[string]sensor.VisualSensor
}

// batchRenderer is the implementation of the BatchRenderer interface.
type batchRenderer struct {
	cfg Config

	mediator        *metadata.Mediator
	resourceManager assets.ResourceManager
	sceneManager    scene.Manager
	sensorFactory   sensor.Factory

	// ownedContext is non-nil only when construction created the headless
	// context; a pre-existing current context is left alone at teardown.
	ownedContext *gfx.WindowlessContext
	renderer     gfx.Renderer

	envs []envRecord

	closed bool
}

// BatchRenderer drives a fixed set of independent environments from recorded
// keyframes and renders them through one shared GPU context. Environment
// indices are dense in [0, NumEnvironments); passing an out-of-range index
// to any method is caller misuse and panics.
//
// All scene mutation methods must be called from a single thread; only the
// frame render itself may overlap with preparing the next frame, per the
// renderer's fence discipline.
type BatchRenderer interface {
	// NumEnvironments returns the environment count.
	//
	// Returns:
	//   - int: the number of environments
	NumEnvironments() int

	// SetEnvironmentKeyframe decodes a serialized keyframe document and
	// installs it as the environment's current (and only) keyframe,
	// applying its scene mutations.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//   - serializedKeyframe: a JSON document {"keyframes": [keyframe]}
	//
	// Returns:
	//   - error: error if the document cannot be decoded
	SetEnvironmentKeyframe(envIndex int, serializedKeyframe string) error

	// SetSensorTransformsFromKeyframe poses every sensor of the environment
	// from the user transform recorded under prefix + sensor name in the
	// current keyframe. A missing key fails the call; sensors ordered after
	// the miss are left untouched.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//   - prefix: prepended to each sensor name to form the transform key
	//
	// Returns:
	//   - error: error if the environment does not hold exactly one
	//     keyframe, or a sensor's transform key is absent
	SetSensorTransformsFromKeyframe(envIndex int, prefix string) error

	// SceneGraph returns the environment's primary scene graph.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//
	// Returns:
	//   - *scene.Graph: the primary graph
	SceneGraph(envIndex int) *scene.Graph

	// SemanticSceneGraph returns the environment's semantic scene graph,
	// which is the primary graph unless separate semantic graphs were
	// requested at construction.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//
	// Returns:
	//   - *scene.Graph: the semantic graph
	SemanticSceneGraph(envIndex int) *scene.Graph

	// EnvironmentSensorParentNode returns the node the environment's
	// sensors are attached under.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//
	// Returns:
	//   - *scene.Node: the sensor parent node
	EnvironmentSensorParentNode(envIndex int) *scene.Node

	// EnvironmentSensors returns the environment's sensors keyed by name.
	// The map is owned by the batch renderer; callers must not mutate it.
	//
	// Parameters:
	//   - envIndex: the environment, in [0, NumEnvironments)
	//
	// Returns:
	//   - map[string]sensor.VisualSensor: the sensors keyed by UUID
	EnvironmentSensors(envIndex int) map[string]sensor.VisualSensor

	// Renderer returns the shared renderer.
	//
	// Returns:
	//   - gfx.Renderer: the renderer all environments draw through
	Renderer() gfx.Renderer

	// StartRenderFrame enqueues one draw job per sensor per environment and
	// starts the batch, handing it to the background render thread when one
	// is available. Scene graphs must not be mutated until WaitRenderFrame
	// returns.
	//
	// Returns:
	//   - error: error if a sensor's render target cannot be created, or a
	//     synchronous draw fails
	StartRenderFrame() error

	// WaitRenderFrame blocks until the in-flight frame (if any) completes.
	WaitRenderFrame()

	// Close tears down every environment (player first, then its sensors),
	// then the resource manager, then the renderer and any context that
	// construction created. Safe to call once.
	//
	// Returns:
	//   - error: error from renderer teardown
	Close() error
}

var _ BatchRenderer = &batchRenderer{}

// envSink adapts one environment to the replay.SceneMutationSink interface,
// routing asset instantiations into that environment's scene graphs and
// light changes into the shared resource manager.
type envSink struct {
	r        *batchRenderer
	envIndex int
}

var _ replay.SceneMutationSink = envSink{}

func (s envSink) InstantiateRenderAsset(info assets.AssetInfo, creation assets.RenderAssetInstanceCreationInfo) (*scene.Node, error) {
	rec := &s.r.envs[s.envIndex]
	sceneIDs := []int{rec.sceneID}
	if rec.semanticSceneID != rec.sceneID {
		sceneIDs = append(sceneIDs, rec.semanticSceneID)
	}
	return s.r.resourceManager.LoadAndCreateRenderAssetInstance(info, creation, s.r.sceneManager, sceneIDs)
}

func (s envSink) SetLights(setup gfx.LightSetup) {
	s.r.resourceManager.SetLightSetup(setup, gfx.DefaultLightSetupKey)
}

// NewBatchRenderer constructs the environments and the shared rendering
// backend. A headless GPU context is created only when no context is already
// current and no renderer was injected; its creation failure aborts
// construction with everything built so far torn down.
//
// Parameters:
//   - cfg: the configuration, NumEnvironments must be positive
//   - options: functional options for batch renderer configuration
//
// Returns:
//   - BatchRenderer: the new batch renderer
//   - error: error if sensor creation or GPU context creation fails
func NewBatchRenderer(cfg Config, options ...BatchRendererBuilderOption) (BatchRenderer, error) {
	if cfg.NumEnvironments <= 0 {
		panic(fmt.Sprintf("sim: configuration requires a positive number of environments, got %d", cfg.NumEnvironments))
	}

	r := &batchRenderer{
		cfg:          cfg,
		sceneManager: scene.NewManager(),
	}

	for _, option := range options {
		option(r)
	}

	r.mediator = metadata.NewMediator(metadata.SimulatorConfiguration{CreateRenderer: true})
	resourceManager, err := assets.NewResourceManager(r.mediator)
	if err != nil {
		return nil, err
	}
	r.resourceManager = resourceManager

	r.envs = make([]envRecord, 0, cfg.NumEnvironments)
	for envIndex := 0; envIndex < cfg.NumEnvironments; envIndex++ {
		sceneID := r.sceneManager.InitSceneGraph()
		semanticSceneID := sceneID
		if cfg.ForceSeparateSemanticSceneGraph {
			semanticSceneID = r.sceneManager.InitSceneGraph()
		}

		parentNode := r.sceneManager.SceneGraph(sceneID).RootNode().CreateChild()
		sensors, err := r.sensorFactory.CreateSensors(parentNode, cfg.SensorSpecifications)
		if err != nil {
			r.teardownEnvironments()
			return nil, fmt.Errorf("sim: environment %d: %w", envIndex, err)
		}

		r.envs = append(r.envs, envRecord{
			player:           replay.NewPlayer(envSink{r: r, envIndex: envIndex}),
			sceneID:          sceneID,
			semanticSceneID:  semanticSceneID,
			sensorParentNode: parentNode,
			sensors:          sensors,
		})
	}

	if r.renderer == nil {
		if !gfx.HasCurrent() {
			ctx, err := gfx.NewWindowlessContext(cfg.GPUDeviceID)
			if err != nil {
				r.teardownEnvironments()
				return nil, fmt.Errorf("sim: failed to create GPU context: %w", err)
			}
			r.ownedContext = ctx
		}
		r.renderer = gfx.NewRenderer(r.ownedContext,
			gfx.WithBackgroundRenderer(cfg.NumEnvironments > 1),
			gfx.WithLeaveContextWithBackgroundRenderer(cfg.LeaveContextWithBackgroundRenderer),
		)
	}

	if cfg.NumEnvironments > 1 && !r.renderer.WasBackgroundRendererInitialized() {
		log.Printf("sim: background renderer unavailable for %d environments; rendering synchronously", cfg.NumEnvironments)
	}

	r.renderer.AcquireGPUContext()
	return r, nil
}

func (r *batchRenderer) NumEnvironments() int {
	return len(r.envs)
}

func (r *batchRenderer) SetEnvironmentKeyframe(envIndex int, serializedKeyframe string) error {
	rec := r.env(envIndex)
	keyframe, err := replay.KeyframeFromString(serializedKeyframe)
	if err != nil {
		return fmt.Errorf("sim: environment %d: %w", envIndex, err)
	}
	rec.player.SetSingleKeyframe(keyframe)
	return nil
}

func (r *batchRenderer) SetSensorTransformsFromKeyframe(envIndex int, prefix string) error {
	rec := r.env(envIndex)
	if n := rec.player.NumKeyframes(); n != 1 {
		return fmt.Errorf("sim: environment %d: sensor transforms require exactly one keyframe, have %d; call SetEnvironmentKeyframe first", envIndex, n)
	}

	// Sorted order makes the stop-at-first-miss contract deterministic.
	names := make([]string, 0, len(rec.sensors))
	for name := range rec.sensors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := prefix + name
		translation, rotation, ok := rec.player.UserTransform(key)
		if !ok {
			return fmt.Errorf("sim: environment %d: user transform %q not found in keyframe", envIndex, key)
		}
		node := rec.sensors[name].Node()
		node.SetTranslation(translation)
		node.SetRotation(rotation)
	}
	return nil
}

func (r *batchRenderer) SceneGraph(envIndex int) *scene.Graph {
	return r.sceneManager.SceneGraph(r.env(envIndex).sceneID)
}

func (r *batchRenderer) SemanticSceneGraph(envIndex int) *scene.Graph {
	return r.sceneManager.SceneGraph(r.env(envIndex).semanticSceneID)
}

func (r *batchRenderer) EnvironmentSensorParentNode(envIndex int) *scene.Node {
	return r.env(envIndex).sensorParentNode
}

func (r *batchRenderer) EnvironmentSensors(envIndex int) map[string]sensor.VisualSensor {
	return r.env(envIndex).sensors
}

func (r *batchRenderer) Renderer() gfx.Renderer {
	return r.renderer
}

func (r *batchRenderer) StartRenderFrame() error {
	for envIndex := range r.envs {
		rec := &r.envs[envIndex]
		for _, name := range sortedSensorNames(rec.sensors) {
			s := rec.sensors[name]
			target, err := s.RenderTarget(r.renderer)
			if err != nil {
				return fmt.Errorf("sim: environment %d: %w", envIndex, err)
			}
			graphID := rec.sceneID
			if s.SensorType() == sensor.TypeSemantic {
				graphID = rec.semanticSceneID
			}
			r.renderer.EnqueueAsyncDrawJob(target, r.sceneManager.SceneGraph(graphID))
		}
	}
	return r.renderer.StartDrawJobs()
}

func (r *batchRenderer) WaitRenderFrame() {
	r.renderer.WaitDrawJobs()
}

func (r *batchRenderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	r.teardownEnvironments()
	r.resourceManager = nil

	var err error
	if r.renderer != nil {
		r.renderer.WaitDrawJobs()
		err = r.renderer.Close()
		r.renderer = nil
	}
	if r.ownedContext != nil {
		if r.ownedContext.IsCurrent() {
			r.ownedContext.Release()
		}
		r.ownedContext.Close()
		r.ownedContext = nil
	}
	return err
}

// teardownEnvironments closes each environment's player and then deletes its
// sensors, releasing each exactly once.
func (r *batchRenderer) teardownEnvironments() {
	for i := range r.envs {
		rec := &r.envs[i]
		if rec.player != nil {
			rec.player.Close()
		}
		for _, name := range sortedSensorNames(rec.sensors) {
			r.sensorFactory.DeleteSensor(rec.sensors, name)
		}
	}
	r.envs = nil
}

func (r *batchRenderer) env(envIndex int) *envRecord {
	if envIndex < 0 || envIndex >= len(r.envs) {
		panic(fmt.Sprintf("sim: environment index %d out of range [0,%d)", envIndex, len(r.envs)))
	}
	return &r.envs[envIndex]
}

func sortedSensorNames(sensors map[string]sensor.VisualSensor) []string {
	names := make([]string, 0, len(sensors))
	for name := range sensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
