package skybox

import (
	"errors"
	"fmt"
)

// TexturePath returns the engine path of the composed sky texture.
// Materials must reference engine paths, not filesystem ones.
func TexturePath(name string) string {
	return fmt.Sprintf("materials/skybox/skybox_%s.png", name)
}

// SkyboxMaterial renders the standard sky material for the named
// skybox.
func SkyboxMaterial(name string) (string, error) {
	if name == "" {
		return "", errors.New("skybox name must not be empty")
	}
	return fmt.Sprintf(skyboxMaterialTemplate, TexturePath(name)), nil
}

// MoondomeMaterial renders the moondome variant, a sky dome mesh
// material that wraps the same texture.
func MoondomeMaterial(name string) (string, error) {
	if name == "" {
		return "", errors.New("skybox name must not be empty")
	}
	return fmt.Sprintf(moondomeMaterialTemplate, TexturePath(name)), nil
}

const skyboxMaterialTemplate = `// THIS FILE IS AUTO-GENERATED (STANDARD SKYBOX)

Layer0
{
	shader "sky.vfx"

	//---- Format ----
	F_TEXTURE_FORMAT2 1 // Dxt1 (LDR)

	//---- Texture ----
	g_flBrightnessExposureBias "0.000"
	g_flRenderOnlyExposureBias "0.000"
	SkyTexture "%s"


	VariableState
	{
		"Texture"
		{
		}
	}
}`

const moondomeMaterialTemplate = `// THIS FILE IS AUTO-GENERATED (MOONDOME)

Layer0
{
	shader "csgo_moondome.vfx"

	//---- Color ----
	g_flTexCoordRotation "0.000"
	g_nScaleTexCoordUByModelScaleAxis "0" // None
	g_nScaleTexCoordVByModelScaleAxis "0" // None
	g_vColorTint "[1.000000 1.000000 1.000000 0.000000]"
	g_vTexCoordCenter "[0.500 0.500]"
	g_vTexCoordOffset "[0.000 0.000]"
	g_vTexCoordScale "[1.000 1.000]"
	g_vTexCoordScrollSpeed "[0.000 0.000]"
	TextureColor "[1.000000 1.000000 1.000000 0.000000]"

	//---- CubeParallax ----
	g_flCubeParallax "0.000"

	//---- Fog ----
	g_bFogEnabled "1"

	//---- Texture ----
	TextureCubeMap "%s"

	//---- Texture Address Mode ----
	g_nTextureAddressModeU "0" // Wrap
	g_nTextureAddressModeV "0" // Wrap


	VariableState
	{
		"Color"
		{
		}
		"CubeParallax"
		{
		}
		"Fog"
		{
		}
		"Texture"
		{
		}
		"Texture Address Mode"
		{
		}
	}
}`
