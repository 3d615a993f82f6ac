package naming

import "path/filepath"

// DestinationPath builds the requested destination for a source file:
//
//	<destRoot>/<category>/<filename>
//
// The original filename is kept; only [CollisionResolver] may rename it.
func DestinationPath(destRoot, category, filename string) string {
	return filepath.Join(destRoot, category, filename)
}
