package gfx

import (
	"encoding/json"
	"testing"
)

func TestNoLights(t *testing.T) {
	if got := len(NoLights()); got != 0 {
		t.Errorf("len(NoLights()) = %d, want 0", got)
	}
}

func TestLightSetupJSON(t *testing.T) {
	setup := LightSetup{
		{Vector: [4]float32{0, 1, 0, 0}, Color: [3]float32{1, 0.9, 0.8}, Model: LightPositionGlobal},
	}
	data, err := json.Marshal(setup)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded LightSetup
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(decoded) != 1 || decoded[0] != setup[0] {
		t.Errorf("decoded = %+v, want %+v", decoded, setup)
	}
}
