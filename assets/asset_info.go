// Package assets loads render asset descriptions and instantiates them as
// drawable nodes in scene graphs. Assets are identified by file path; loading
// the same path twice reuses the cached registration.
package assets

// AssetInfo describes a render asset on disk and how it should be
// interpreted when instantiated.
type AssetInfo struct {
	// FilePath identifies the asset. It doubles as the cache key.
	FilePath string `json:"filepath"`
	// VirtualUnitToMeters rescales the asset's native units to meters.
	VirtualUnitToMeters float32 `json:"virtualUnitToMeters,omitempty"`
	// ForceFlatShading disables lighting for instances of this asset.
	ForceFlatShading bool `json:"forceFlatShading,omitempty"`
	// HasSemanticTextures marks assets whose semantic ids come from
	// textures rather than per-instance ids.
	HasSemanticTextures bool `json:"hasSemanticTextures,omitempty"`
}

// RenderAssetInstanceCreationInfo describes one instance of a render asset
// to place in a scene graph.
type RenderAssetInstanceCreationInfo struct {
	// FilePath names the asset to instantiate. Must match a loaded asset.
	FilePath string `json:"filepath"`
	// Scale is an optional non-uniform scale; nil means unit scale.
	Scale *[3]float32 `json:"scale,omitempty"`
	// IsStatic marks instances that never move after creation.
	IsStatic bool `json:"isStatic,omitempty"`
	// IsRGBD makes the instance visible to color and depth sensors.
	IsRGBD bool `json:"isRGBD,omitempty"`
	// IsSemantic makes the instance visible to semantic sensors.
	IsSemantic bool `json:"isSemantic,omitempty"`
	// LightSetupKey selects the light setup the instance is lit with.
	LightSetupKey string `json:"lightSetupKey,omitempty"`
}
