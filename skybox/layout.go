package skybox

import (
	"image"

	"skyconv/libio"
)

// Slot identifies one position of the engine's skybox layout, in the
// face order of the envmap container.
type Slot int

const (
	SlotRight = Slot(iota)
	SlotLeft
	SlotUp
	SlotDown
	SlotBack
	SlotFront
)

// slotSuffixes are the file name suffixes the engine expects.
var slotSuffixes = [6]string{"rt", "lf", "up", "dn", "bk", "ft"}

// crossCells is the cell of each slot on the 4x3 cross sheet.
var crossCells = [6]image.Point{
	SlotRight: {X: 2, Y: 1},
	SlotLeft:  {X: 0, Y: 1},
	SlotUp:    {X: 1, Y: 0},
	SlotDown:  {X: 1, Y: 2},
	SlotBack:  {X: 3, Y: 1},
	SlotFront: {X: 1, Y: 1},
}

// Placement maps a source face onto a slot.
type Placement struct {
	Source    Face
	Transform libio.Transform
}

// Orientation is a full source-to-engine mapping table. A wrong table
// mirrors or tilts the sky silently, so the mappings are not
// configurable beyond picking a preset.
type Orientation struct {
	Name  string
	Slots [6]Placement
}

// DefaultOrientation converts sources authored with the skybox camera
// conventions: the engine looks at the skybox from inside, so the
// horizontal faces shift a quarter turn (the left slot shows the back
// face and so on). Pixels stay untouched.
var DefaultOrientation = &Orientation{
	Name: "default",
	Slots: [6]Placement{
		SlotRight: {Source: FaceFront},
		SlotLeft:  {Source: FaceBack},
		SlotUp:    {Source: FaceUp},
		SlotDown:  {Source: FaceDown},
		SlotBack:  {Source: FaceLeft},
		SlotFront: {Source: FaceRight},
	},
}

// ExrOrientation converts prerendered EXR faces, which bake different
// in-plane rotations into the vertical and horizontal strips.
var ExrOrientation = &Orientation{
	Name: "exr",
	Slots: [6]Placement{
		SlotRight: {Source: FaceLeft, Transform: libio.TransformRotate180},
		SlotLeft:  {Source: FaceBack},
		SlotUp:    {Source: FaceUp, Transform: libio.TransformRotate90},
		SlotDown:  {Source: FaceDown, Transform: libio.TransformRotate90},
		SlotBack:  {Source: FaceFront, Transform: libio.TransformRotate90},
		SlotFront: {Source: FaceRight, Transform: libio.TransformRotate180},
	},
}

// OrientationNamed returns the preset with the given name.
func OrientationNamed(name string) (*Orientation, bool) {
	for _, orient := range []*Orientation{DefaultOrientation, ExrOrientation} {
		if orient.Name == name {
			return orient, true
		}
	}
	return nil, false
}

// AutoOrientation picks the preset matching the discovered sources.
func AutoOrientation(set *FaceSet) *Orientation {
	if set.AllExr() {
		return ExrOrientation
	}
	return DefaultOrientation
}
