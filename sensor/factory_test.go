package sensor

import (
	"testing"

	"github.com/RajeshDM/habitat-sim/scene"
)

func testParentNode(t *testing.T) *scene.Node {
	t.Helper()
	m := scene.NewManager()
	g := m.SceneGraph(m.InitSceneGraph())
	return g.RootNode().CreateChild()
}

func TestCreateSensors(t *testing.T) {
	parent := testParentNode(t)
	specs := []Spec{
		{UUID: "rgb", SensorType: TypeColor, Resolution: [2]int{64, 64}, Position: [3]float32{0, 1.5, 0}},
		{UUID: "depth", SensorType: TypeDepth, Resolution: [2]int{64, 64}},
	}

	sensors, err := Factory{}.CreateSensors(parent, specs)
	if err != nil {
		t.Fatalf("CreateSensors() error = %v", err)
	}
	if len(sensors) != 2 {
		t.Fatalf("len(sensors) = %d, want 2", len(sensors))
	}

	rgb := sensors["rgb"]
	if rgb == nil {
		t.Fatal("sensor \"rgb\" missing from suite")
	}
	if rgb.Node().Parent() != parent {
		t.Error("sensor node is not attached under the parent node")
	}
	if got := rgb.Node().Translation(); got.Y != 1.5 {
		t.Errorf("sensor node translation = %+v, want y = 1.5", got)
	}
	if rgb.SensorType() != TypeColor {
		t.Errorf("SensorType() = %v, want %v", rgb.SensorType(), TypeColor)
	}
}

func TestCreateSensorsDuplicateUUID(t *testing.T) {
	parent := testParentNode(t)
	specs := []Spec{
		{UUID: "rgb", Resolution: [2]int{64, 64}},
		{UUID: "rgb", Resolution: [2]int{64, 64}},
	}
	if _, err := (Factory{}).CreateSensors(parent, specs); err == nil {
		t.Error("CreateSensors() with duplicate uuids did not fail")
	}
	// The rolled-back sensor's node must be gone from the graph.
	if got := len(parent.Children()); got != 0 {
		t.Errorf("parent has %d children after failed creation, want 0", got)
	}
}

func TestCreateSensorsEmptyUUID(t *testing.T) {
	parent := testParentNode(t)
	if _, err := (Factory{}).CreateSensors(parent, []Spec{{UUID: ""}}); err == nil {
		t.Error("CreateSensors() with empty uuid did not fail")
	}
}

func TestDeleteSensor(t *testing.T) {
	parent := testParentNode(t)
	sensors, err := Factory{}.CreateSensors(parent, []Spec{{UUID: "rgb", Resolution: [2]int{64, 64}}})
	if err != nil {
		t.Fatalf("CreateSensors() error = %v", err)
	}

	if !(Factory{}).DeleteSensor(sensors, "rgb") {
		t.Error("DeleteSensor() = false for an existing sensor")
	}
	if len(sensors) != 0 {
		t.Errorf("len(sensors) after delete = %d, want 0", len(sensors))
	}
	if len(parent.Children()) != 0 {
		t.Error("sensor node still attached after delete")
	}
	if (Factory{}).DeleteSensor(sensors, "rgb") {
		t.Error("DeleteSensor() = true for an already-deleted sensor")
	}
}

func TestRenderTargetInvalidResolution(t *testing.T) {
	parent := testParentNode(t)
	sensors, err := Factory{}.CreateSensors(parent, []Spec{{UUID: "rgb"}})
	if err != nil {
		t.Fatalf("CreateSensors() error = %v", err)
	}
	if _, err := sensors["rgb"].RenderTarget(nil); err == nil {
		t.Error("RenderTarget() with zero resolution did not fail")
	}
}
