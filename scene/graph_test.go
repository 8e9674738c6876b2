package scene

import (
	"testing"

	"github.com/goki/mat32"

	"github.com/RajeshDM/habitat-sim/common"
)

func TestManagerInitSceneGraph(t *testing.T) {
	m := NewManager()
	first := m.InitSceneGraph()
	second := m.InitSceneGraph()
	if first != 0 || second != 1 {
		t.Errorf("InitSceneGraph ids = %d, %d, want 0, 1", first, second)
	}
	if got := m.NumSceneGraphs(); got != 2 {
		t.Errorf("NumSceneGraphs() = %d, want 2", got)
	}
	if m.SceneGraph(first) == m.SceneGraph(second) {
		t.Error("distinct ids resolved to the same graph")
	}
}

func TestManagerSceneGraphPanicsOnInvalidID(t *testing.T) {
	m := NewManager()
	m.InitSceneGraph()
	defer func() {
		if recover() == nil {
			t.Error("SceneGraph(5) did not panic for an out-of-range id")
		}
	}()
	m.SceneGraph(5)
}

func TestNodeDefaults(t *testing.T) {
	m := NewManager()
	g := m.SceneGraph(m.InitSceneGraph())
	n := g.RootNode().CreateChild()

	if n.Rotation() != common.QuatIdentity() {
		t.Errorf("new node rotation = %+v, want identity", n.Rotation())
	}
	if n.Scale() != (mat32.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("new node scale = %+v, want unit", n.Scale())
	}
	if n.SemanticID() != common.IDUndefined {
		t.Errorf("new node semantic id = %d, want %d", n.SemanticID(), common.IDUndefined)
	}
	if n.Parent() != g.RootNode() {
		t.Error("new node is not parented to the root")
	}
}

func TestRemoveInvalidatesHandles(t *testing.T) {
	m := NewManager()
	g := m.SceneGraph(m.InitSceneGraph())
	parent := g.RootNode().CreateChild()
	child := parent.CreateChild()

	if g.Node(child.ID()) != child {
		t.Fatal("live node did not resolve by id")
	}

	parent.Remove()

	if g.Node(parent.ID()) != nil {
		t.Error("removed node still resolves by id")
	}
	if g.Node(child.ID()) != nil {
		t.Error("descendant of removed node still resolves by id")
	}
	if got := g.NumNodes(); got != 1 {
		t.Errorf("NumNodes() after removal = %d, want 1 (root)", got)
	}

	// Removing twice is a no-op.
	parent.Remove()
}

func TestRootCannotBeRemoved(t *testing.T) {
	m := NewManager()
	g := m.SceneGraph(m.InitSceneGraph())
	g.RootNode().Remove()
	if g.Node(g.RootNode().ID()) == nil {
		t.Error("root node was removed")
	}
}

func TestDrawablesDepthFirst(t *testing.T) {
	m := NewManager()
	g := m.SceneGraph(m.InitSceneGraph())

	a := g.RootNode().CreateChild()
	a.SetDrawable(&Drawable{AssetPath: "a.glb"})
	b := a.CreateChild()
	b.SetDrawable(&Drawable{AssetPath: "b.glb"})
	g.RootNode().CreateChild() // structural, no drawable

	drawables := g.Drawables()
	if len(drawables) != 2 {
		t.Fatalf("len(Drawables()) = %d, want 2", len(drawables))
	}
	if drawables[0] != a || drawables[1] != b {
		t.Error("Drawables() not in depth-first order from the root")
	}
}
