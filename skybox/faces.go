// Package skybox turns sets of skybox face images into the texture and
// material layout of the target engine.
package skybox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// Face identifies one side of a skybox as named by the source files.
type Face int

const (
	FaceBack = Face(iota)
	FaceUp
	FaceFront
	FaceRight
	FaceLeft
	FaceDown
)

var faceNames = [6]string{"back", "up", "front", "right", "left", "down"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}

// faceKeywords lists the filename keywords binding a file to a face.
var faceKeywords = [6][]string{
	FaceBack:  {"back", "bk"},
	FaceUp:    {"up", "top"},
	FaceFront: {"front", "ft"},
	FaceRight: {"right", "rt"},
	FaceLeft:  {"left", "lf"},
	FaceDown:  {"down", "dn"},
}

// faceExtensions in binding preference order.
var faceExtensions = []string{".vtf", ".png", ".jpg", ".jpeg", ".tga", ".bmp", ".tif", ".tiff", ".hdr", ".exr"}

// FaceSet maps each face to its source file path.
type FaceSet [6]string

// Missing returns the faces without a source file, in face order.
func (s *FaceSet) Missing() []Face {
	var missing []Face
	for face, path := range s {
		if path == "" {
			missing = append(missing, Face(face))
		}
	}
	return missing
}

// AllExr reports whether every face comes from an OpenEXR file.
func (s *FaceSet) AllExr() bool {
	for _, path := range s {
		if !strings.EqualFold(filepath.Ext(path), ".exr") {
			return false
		}
	}
	return true
}

// IncompleteFaceSetError reports the faces a directory scan could not
// bind to a source file.
type IncompleteFaceSetError struct {
	Missing []Face
}

func (e *IncompleteFaceSetError) Error() string {
	names := make([]string, len(e.Missing))
	for i, face := range e.Missing {
		names[i] = face.String()
	}
	return fmt.Sprintf("missing skybox faces: %s", strings.Join(names, ", "))
}

// Discover scans dir for the six face images. Keywords match the
// lowercased filename; candidates are ranked (exact stem, then stem
// suffix, then substring; longer keywords first; then extension
// preference; then name) and bound greedily, one face per file, so
// "left.png" can never end up as the front face even though "left"
// contains "ft". On missing faces the partial set is returned together
// with an *IncompleteFaceSetError.
func Discover(dir string) (FaceSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FaceSet{}, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if slices.Contains(faceExtensions, ext) {
			files = append(files, entry.Name())
		}
	}

	type candidate struct {
		face    Face
		file    string
		rank    int
		keyword string
		ext     int
	}

	var candidates []candidate
	for _, file := range files {
		lower := strings.ToLower(file)
		ext := filepath.Ext(lower)
		stem := strings.TrimSuffix(lower, ext)

		for face, keywords := range faceKeywords {
			for _, keyword := range keywords {
				rank := -1
				switch {
				case stem == keyword:
					rank = 0
				case strings.HasSuffix(stem, keyword):
					rank = 1
				case strings.Contains(lower, keyword):
					rank = 2
				}
				if rank < 0 {
					continue
				}
				candidates = append(candidates, candidate{
					face:    Face(face),
					file:    file,
					rank:    rank,
					keyword: keyword,
					ext:     slices.Index(faceExtensions, ext),
				})
			}
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		if len(a.keyword) != len(b.keyword) {
			return len(b.keyword) - len(a.keyword)
		}
		if a.ext != b.ext {
			return a.ext - b.ext
		}
		return strings.Compare(a.file, b.file)
	})

	var set FaceSet
	used := make(map[string]bool)
	for _, c := range candidates {
		if set[c.face] != "" || used[c.file] {
			continue
		}
		set[c.face] = filepath.Join(dir, c.file)
		used[c.file] = true
	}

	if missing := set.Missing(); len(missing) > 0 {
		return set, &IncompleteFaceSetError{Missing: missing}
	}
	return set, nil
}
