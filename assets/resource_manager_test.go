package assets

import (
	"testing"

	"github.com/RajeshDM/habitat-sim/gfx"
	"github.com/RajeshDM/habitat-sim/metadata"
	"github.com/RajeshDM/habitat-sim/scene"
)

func testResourceManager(t *testing.T) ResourceManager {
	t.Helper()
	rm, err := NewResourceManager(metadata.NewMediator(metadata.SimulatorConfiguration{CreateRenderer: true}))
	if err != nil {
		t.Fatalf("NewResourceManager() error = %v", err)
	}
	return rm
}

func TestNewResourceManagerRequiresRenderer(t *testing.T) {
	mediator := metadata.NewMediator(metadata.SimulatorConfiguration{CreateRenderer: false})
	if _, err := NewResourceManager(mediator); err == nil {
		t.Error("NewResourceManager() without CreateRenderer did not fail")
	}
}

func TestLoadRenderAsset(t *testing.T) {
	rm := testResourceManager(t)

	if err := rm.LoadRenderAsset(AssetInfo{}); err == nil {
		t.Error("LoadRenderAsset() with empty file path did not fail")
	}

	info := AssetInfo{FilePath: "chair.glb", ForceFlatShading: true}
	if err := rm.LoadRenderAsset(info); err != nil {
		t.Fatalf("LoadRenderAsset() error = %v", err)
	}
	got, ok := rm.AssetInfo("chair.glb")
	if !ok {
		t.Fatal("AssetInfo() did not find the loaded asset")
	}
	if got != info {
		t.Errorf("AssetInfo() = %+v, want %+v", got, info)
	}
}

func TestLoadAndCreateRenderAssetInstance(t *testing.T) {
	rm := testResourceManager(t)
	m := scene.NewManager()
	sceneID := m.InitSceneGraph()
	semanticID := m.InitSceneGraph()

	info := AssetInfo{FilePath: "chair.glb"}
	creation := RenderAssetInstanceCreationInfo{
		FilePath: "chair.glb",
		Scale:    &[3]float32{2, 2, 2},
		IsRGBD:   true,
	}

	node, err := rm.LoadAndCreateRenderAssetInstance(info, creation, m, []int{sceneID, semanticID})
	if err != nil {
		t.Fatalf("LoadAndCreateRenderAssetInstance() error = %v", err)
	}
	if node.Graph() != m.SceneGraph(sceneID) {
		t.Error("returned node does not belong to the first listed graph")
	}
	if got := node.Scale(); got.X != 2 || got.Y != 2 || got.Z != 2 {
		t.Errorf("instance scale = %+v, want (2, 2, 2)", got)
	}
	if d := node.Drawable(); d == nil || !d.IsRGBD || d.IsSemantic {
		t.Errorf("primary instance drawable = %+v, want rgbd only", node.Drawable())
	}

	semanticDrawables := m.SceneGraph(semanticID).Drawables()
	if len(semanticDrawables) != 1 {
		t.Fatalf("semantic graph has %d drawables, want 1", len(semanticDrawables))
	}
	if d := semanticDrawables[0].Drawable(); d.IsRGBD || !d.IsSemantic {
		t.Errorf("semantic mirror drawable = %+v, want semantic only", d)
	}
}

func TestLoadAndCreateRenderAssetInstanceAliasedIDs(t *testing.T) {
	rm := testResourceManager(t)
	m := scene.NewManager()
	sceneID := m.InitSceneGraph()

	info := AssetInfo{FilePath: "chair.glb"}
	creation := RenderAssetInstanceCreationInfo{FilePath: "chair.glb", IsRGBD: true}

	// Aliased color and semantic ids must create a single instance.
	if _, err := rm.LoadAndCreateRenderAssetInstance(info, creation, m, []int{sceneID, sceneID}); err != nil {
		t.Fatalf("LoadAndCreateRenderAssetInstance() error = %v", err)
	}
	if got := len(m.SceneGraph(sceneID).Drawables()); got != 1 {
		t.Errorf("graph has %d drawables, want 1", got)
	}
}

func TestLoadAndCreateRenderAssetInstanceValidation(t *testing.T) {
	rm := testResourceManager(t)
	m := scene.NewManager()
	sceneID := m.InitSceneGraph()

	info := AssetInfo{FilePath: "chair.glb"}
	if _, err := rm.LoadAndCreateRenderAssetInstance(info, RenderAssetInstanceCreationInfo{FilePath: "chair.glb"}, m, nil); err == nil {
		t.Error("empty scene id list did not fail")
	}
	if _, err := rm.LoadAndCreateRenderAssetInstance(info, RenderAssetInstanceCreationInfo{FilePath: "table.glb"}, m, []int{sceneID}); err == nil {
		t.Error("mismatched asset and creation file paths did not fail")
	}
}

func TestLightSetupRegistry(t *testing.T) {
	rm := testResourceManager(t)

	setup, ok := rm.LightSetup(gfx.DefaultLightSetupKey)
	if !ok {
		t.Fatal("default light setup missing")
	}
	if len(setup) != 0 {
		t.Errorf("default light setup has %d lights, want 0", len(setup))
	}

	lights := gfx.LightSetup{{Vector: [4]float32{0, 1, 0, 0}, Color: [3]float32{1, 1, 1}}}
	rm.SetLightSetup(lights, gfx.DefaultLightSetupKey)
	setup, _ = rm.LightSetup(gfx.DefaultLightSetupKey)
	if len(setup) != 1 {
		t.Errorf("light setup has %d lights after update, want 1", len(setup))
	}
}
