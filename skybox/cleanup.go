package skybox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// CleanupError lists the source files that could not be removed.
type CleanupError struct {
	Errs []error
}

func (e *CleanupError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("could not remove %d source files: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// CleanupSources removes the VTF sources of the set along with their
// .vmt material siblings. Sources in other formats are kept. Returns
// the removed paths; removal failures are collected into a
// *CleanupError without stopping the sweep.
func CleanupSources(set *FaceSet) ([]string, error) {
	var paths []string
	for _, path := range set {
		if strings.ToLower(filepath.Ext(path)) != ".vtf" {
			continue
		}
		paths = append(paths, path)
		sibling := strings.TrimSuffix(path, filepath.Ext(path)) + ".vmt"
		if _, err := os.Stat(sibling); err == nil {
			paths = append(paths, sibling)
		}
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	var deleted []string
	var errs []error
	for _, path := range paths {
		if err := os.Remove(path); err != nil {
			errs = append(errs, err)
			continue
		}
		deleted = append(deleted, path)
	}
	if len(errs) > 0 {
		return deleted, &CleanupError{Errs: errs}
	}
	return deleted, nil
}
