// Package envmap reads and writes .skyenv files, a small container for
// HDR cube maps: a 16 byte header followed by the six faces as RGBE
// pixels, optionally LZ4 compressed.
package envmap

const MagicNumberSKYENV = 0x534b5945

// Face order inside the container.
type CubeFace int

const (
	CubeRight = CubeFace(iota)
	CubeLeft
	CubeUp
	CubeDown
	CubeBack
	CubeFront
)

// The same order by cube map axis.
const (
	CubePositiveX = CubeFace(iota)
	CubeNegativeX
	CubePositiveY
	CubeNegativeY
	CubePositiveZ
	CubeNegativeZ
)

var faceNames = [6]string{"right", "left", "up", "down", "back", "front"}

func (f CubeFace) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}

type EnvMapVersion uint32

const (
	EnvMapVersion1_000_000 = EnvMapVersion(1_000_000)
)

type EnvMapCompression uint32

const (
	EnvMapCompressionNone = EnvMapCompression(iota)
	EnvMapCompressionLZ4Fast
	EnvMapCompressionLZ4
)

type EnvMapHeader struct {
	Check       uint32
	Version     EnvMapVersion
	Compression EnvMapCompression
	Size        uint32
}

// EnvMap holds six square RGB faces backed by one contiguous slice.
type EnvMap struct {
	Faces [6][]float32
	Size  int
	data  []float32
}

// NewEnvMap slices data, which must hold 6*size*size RGB pixels, into
// its six faces.
func NewEnvMap(data []float32, size int) *EnvMap {
	o := size * size * 3

	faces := [6][]float32{
		data[0*o : 1*o : 1*o],
		data[1*o : 2*o : 2*o],
		data[2*o : 3*o : 3*o],
		data[3*o : 4*o : 4*o],
		data[4*o : 5*o : 5*o],
		data[5*o : 6*o : 6*o],
	}

	return &EnvMap{
		Size:  size,
		data:  data,
		Faces: faces,
	}
}

// Concat returns all six faces as one slice.
func (env *EnvMap) Concat() []float32 {
	return env.data
}

// Face returns the pixels of a single face.
func (env *EnvMap) Face(face CubeFace) []float32 {
	return env.Faces[face]
}
