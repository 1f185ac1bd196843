package skybox

import (
	"fmt"

	"skyconv/envmap"
	"skyconv/libio"
)

// OutputImage is one finished file of a conversion.
type OutputImage struct {
	Name string
	Rgba *libio.IntImage
}

// ComposeFaces renders the six engine face files, "<base>_rt.png"
// through "<base>_ft.png". All faces must be 4 channel images of the
// same size.
func ComposeFaces(base string, faces [6]*libio.IntImage, orient *Orientation) ([]OutputImage, error) {
	if err := checkFaces(faces); err != nil {
		return nil, err
	}
	outputs := make([]OutputImage, 0, 6)
	for slot, placement := range orient.Slots {
		outputs = append(outputs, OutputImage{
			Name: fmt.Sprintf("%s_%s.png", base, slotSuffixes[slot]),
			Rgba: faces[placement.Source].Apply(placement.Transform),
		})
	}
	return outputs, nil
}

// ComposeCross stitches the faces into a single 4x3 cross sheet,
// "<base>.png". Faces must be square, rotated faces could not share
// cells with unrotated ones otherwise. Unused cells stay transparent.
func ComposeCross(base string, faces [6]*libio.IntImage, orient *Orientation) (OutputImage, error) {
	if err := checkFaces(faces); err != nil {
		return OutputImage{}, err
	}
	size := faces[0].Width
	if faces[0].Height != size {
		return OutputImage{}, fmt.Errorf("cross sheets need square faces, got %dx%d", size, faces[0].Height)
	}

	sheet := libio.NewIntImage(make([]uint8, 4*size*4*size*3), 4, size*4, size*3)
	for slot, placement := range orient.Slots {
		img := faces[placement.Source].Apply(placement.Transform)
		cell := crossCells[slot]
		blit(sheet, img, cell.X*size, cell.Y*size)
	}
	return OutputImage{Name: base + ".png", Rgba: sheet}, nil
}

// ComposeEnvMap packs linear color faces into a cube map, in the slot
// order of the container. Faces must be square.
func ComposeEnvMap(faces [6]*libio.FloatImage, orient *Orientation) (*envmap.EnvMap, error) {
	if err := checkLinearFaces(faces); err != nil {
		return nil, err
	}
	size := faces[0].Width
	if faces[0].Height != size {
		return nil, fmt.Errorf("cube maps need square faces, got %dx%d", size, faces[0].Height)
	}

	data := make([]float32, 0, 6*size*size*3)
	for _, placement := range orient.Slots {
		img := faces[placement.Source].Apply(placement.Transform).ToChannels(3)
		data = append(data, img.Pix...)
	}
	return envmap.NewEnvMap(data, size), nil
}

func checkFaces(faces [6]*libio.IntImage) error {
	var missing []Face
	for face, img := range faces {
		if img == nil {
			missing = append(missing, Face(face))
		}
	}
	if len(missing) > 0 {
		return &IncompleteFaceSetError{Missing: missing}
	}
	for face, img := range faces {
		if img.Width != faces[0].Width || img.Height != faces[0].Height {
			return fmt.Errorf("the %s face is %dx%d, all faces must be %dx%d",
				Face(face), img.Width, img.Height, faces[0].Width, faces[0].Height)
		}
	}
	return nil
}

func checkLinearFaces(faces [6]*libio.FloatImage) error {
	var missing []Face
	for face, img := range faces {
		if img == nil {
			missing = append(missing, Face(face))
		}
	}
	if len(missing) > 0 {
		return &IncompleteFaceSetError{Missing: missing}
	}
	for face, img := range faces {
		if img.Width != faces[0].Width || img.Height != faces[0].Height {
			return fmt.Errorf("the %s face is %dx%d, all faces must be %dx%d",
				Face(face), img.Width, img.Height, faces[0].Width, faces[0].Height)
		}
	}
	return nil
}

// CrossFromEnvMap lays the six faces of a cube map onto a 4x3 cross
// sheet, for previews. The faces are already engine oriented, so no
// transforms apply.
func CrossFromEnvMap(env *envmap.EnvMap) *libio.FloatImage {
	size := env.Size
	sheet := libio.NewFloatImage(make([]float32, 3*size*4*size*3), 3, size*4, size*3)
	for slot, cell := range crossCells {
		face := libio.NewFloatImage(env.Face(envmap.CubeFace(slot)), 3, size, size)
		blitFloat(sheet, face, cell.X*size, cell.Y*size)
	}
	return sheet
}

// blit copies src into dst at (x0, y0). Channel counts must match.
func blit(dst, src *libio.IntImage, x0, y0 int) {
	row := src.Width * src.Channels
	for y := 0; y < src.Height; y++ {
		start := src.Index(0, y)
		copy(dst.Pix[dst.Index(x0, y0+y):], src.Pix[start:start+row])
	}
}

func blitFloat(dst, src *libio.FloatImage, x0, y0 int) {
	row := src.Width * src.Channels
	for y := 0; y < src.Height; y++ {
		start := src.Index(0, y)
		copy(dst.Pix[dst.Index(x0, y0+y):], src.Pix[start:start+row])
	}
}
