package naming

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DupMarker is inserted before the extension of a colliding filename.
const DupMarker = "_dup"

// CollisionResolver tracks destination paths claimed during a run and
// renames a file once when its destination is already taken, either by an
// earlier file in the run or by a file already on disk. The renamed path is
// not checked again: a third file for the same name gets the same "_dup"
// path and overwrites it. All methods are goroutine-safe.
type CollisionResolver struct {
	mu      sync.Mutex
	claimed map[string]bool
	exists  func(path string) bool
}

// NewCollisionResolver creates a resolver that also treats files present on
// disk as occupied.
func NewCollisionResolver() *CollisionResolver {
	return NewCollisionResolverWith(fileExists)
}

// NewCollisionResolverWith creates a resolver that consults exists for
// on-disk occupancy. A nil exists only considers paths claimed in this run.
func NewCollisionResolverWith(exists func(path string) bool) *CollisionResolver {
	return &CollisionResolver{
		claimed: make(map[string]bool),
		exists:  exists,
	}
}

// Resolve returns the final destination for requested and records it as
// claimed. The second return value reports whether the file was renamed.
func (cr *CollisionResolver) Resolve(requested string) (string, bool) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.occupied(requested) {
		cr.claimed[requested] = true
		return requested, false
	}
	candidate := DupPath(requested)
	cr.claimed[candidate] = true
	return candidate, true
}

func (cr *CollisionResolver) occupied(path string) bool {
	if cr.claimed[path] {
		return true
	}
	return cr.exists != nil && cr.exists(path)
}

// DupPath inserts [DupMarker] between the stem and extension of path's
// filename: "cat/x.svg" → "cat/x_dup.svg".
func DupPath(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	return dir + strings.TrimSuffix(base, ext) + DupMarker + ext
}

func fileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
