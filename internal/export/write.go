package export

import (
	"os"
	"path/filepath"
)

// writeAtomic writes data next to path and renames it into place,
// so a partially written file never appears at path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Path: dir, Message: "failed to create output directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return &Error{Path: path, Message: "failed to create temporary file", Cause: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return &Error{Path: path, Message: "failed to write file", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &Error{Path: path, Message: "failed to write file", Cause: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return &Error{Path: path, Message: "failed to set file mode", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &Error{Path: path, Message: "failed to move file into place", Cause: err}
	}
	return nil
}
