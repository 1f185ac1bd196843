package skybox_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"skyconv/skybox"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0666); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDiscoverKeywordStems(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "back.png", "up.png", "front.png", "right.png", "left.png", "down.png")

	set, err := skybox.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := [6]string{
		skybox.FaceBack:  "back.png",
		skybox.FaceUp:    "up.png",
		skybox.FaceFront: "front.png",
		skybox.FaceRight: "right.png",
		skybox.FaceLeft:  "left.png",
		skybox.FaceDown:  "down.png",
	}
	for face, name := range want {
		if set[face] != filepath.Join(dir, name) {
			t.Errorf("the %v face should be %q but is %q\n", skybox.Face(face), name, set[face])
		}
	}
}

// "left" contains "ft", so a naive substring match would hand the left
// image to the front face.
func TestDiscoverExactStemBeatsSubstring(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "left.png", "front.png", "back.png", "up.png", "right.png", "down.png")

	set, err := skybox.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if set[skybox.FaceLeft] != filepath.Join(dir, "left.png") {
		t.Errorf("the left face should be %q but is %q\n", "left.png", set[skybox.FaceLeft])
	}
	if set[skybox.FaceFront] != filepath.Join(dir, "front.png") {
		t.Errorf("the front face should be %q but is %q\n", "front.png", set[skybox.FaceFront])
	}
}

func TestDiscoverSuffixKeywords(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "sky_bk.tga", "sky_up.tga", "sky_ft.tga", "sky_rt.tga", "sky_lf.tga", "sky_dn.tga")

	set, err := skybox.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := [6]string{
		skybox.FaceBack:  "sky_bk.tga",
		skybox.FaceUp:    "sky_up.tga",
		skybox.FaceFront: "sky_ft.tga",
		skybox.FaceRight: "sky_rt.tga",
		skybox.FaceLeft:  "sky_lf.tga",
		skybox.FaceDown:  "sky_dn.tga",
	}
	for face, name := range want {
		if set[face] != filepath.Join(dir, name) {
			t.Errorf("the %v face should be %q but is %q\n", skybox.Face(face), name, set[face])
		}
	}
}

func TestDiscoverIgnoresCase(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "SkyBack.PNG", "SkyTop.PNG", "SkyFront.PNG", "SkyRight.PNG", "SkyLeft.PNG", "SkyDown.PNG")

	set, err := skybox.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if set[skybox.FaceUp] != filepath.Join(dir, "SkyTop.PNG") {
		t.Errorf("the up face should keep its original name but is %q\n", set[skybox.FaceUp])
	}
}

func TestDiscoverPrefersVtf(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "back.png", "up.png", "front.png", "right.png", "left.png", "down.png", "up.vtf")

	set, err := skybox.Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if set[skybox.FaceUp] != filepath.Join(dir, "up.vtf") {
		t.Errorf("the up face should be %q but is %q\n", "up.vtf", set[skybox.FaceUp])
	}
}

func TestDiscoverBindsFilesOnce(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "up_down.png")

	set, err := skybox.Discover(dir)

	var incomplete *skybox.IncompleteFaceSetError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error should be an IncompleteFaceSetError but is %v\n", err)
	}
	if set[skybox.FaceDown] != filepath.Join(dir, "up_down.png") {
		t.Errorf("the down face should be %q but is %q\n", "up_down.png", set[skybox.FaceDown])
	}
	if set[skybox.FaceUp] != "" {
		t.Errorf("the up face should not reuse the file but is %q\n", set[skybox.FaceUp])
	}
}

func TestDiscoverMissingFaces(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "left.png", "front.png", "readme.txt", "up.vmt")
	if err := os.Mkdir(filepath.Join(dir, "up"), 0777); err != nil {
		t.Fatal(err)
	}

	set, err := skybox.Discover(dir)

	var incomplete *skybox.IncompleteFaceSetError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error should be an IncompleteFaceSetError but is %v\n", err)
	}
	want := []skybox.Face{skybox.FaceBack, skybox.FaceUp, skybox.FaceRight, skybox.FaceDown}
	if len(incomplete.Missing) != len(want) {
		t.Fatalf("missing faces should be %v but are %v\n", want, incomplete.Missing)
	}
	for i, face := range want {
		if incomplete.Missing[i] != face {
			t.Fatalf("missing faces should be %v but are %v\n", want, incomplete.Missing)
		}
	}

	if set[skybox.FaceLeft] == "" || set[skybox.FaceFront] == "" {
		t.Errorf("the partial set should keep the faces that were found\n")
	}
}

func TestDiscoverEmptyDir(t *testing.T) {
	set, err := skybox.Discover(t.TempDir())

	var incomplete *skybox.IncompleteFaceSetError
	if !errors.As(err, &incomplete) {
		t.Fatalf("error should be an IncompleteFaceSetError but is %v\n", err)
	}
	if len(incomplete.Missing) != 6 {
		t.Errorf("all %d faces should be missing but only %v are\n", 6, incomplete.Missing)
	}
	if msg := incomplete.Error(); msg != "missing skybox faces: back, up, front, right, left, down" {
		t.Errorf("unexpected error message %q\n", msg)
	}
	for face, path := range set {
		if path != "" {
			t.Errorf("the %v face should be empty but is %q\n", skybox.Face(face), path)
		}
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := skybox.Discover(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should be ErrNotExist but is %v\n", err)
	}
}

func TestFaceSetAllExr(t *testing.T) {
	exr := skybox.FaceSet{"b.exr", "u.exr", "f.exr", "r.exr", "l.exr", "d.exr"}
	if !exr.AllExr() {
		t.Errorf("a full EXR set should report AllExr\n")
	}

	mixed := exr
	mixed[skybox.FaceUp] = "u.png"
	if mixed.AllExr() {
		t.Errorf("a mixed set should not report AllExr\n")
	}
}
