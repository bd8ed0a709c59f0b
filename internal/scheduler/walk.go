package scheduler

import (
	"io/fs"
	"path/filepath"

	"github.com/standardbeagle/quickersfv/internal/errors"
)

// fileInfo describes one regular file discovered by walkFiles,
// the Go analogue of the original's iterateFiles()-produced FileInfo.
type fileInfo struct {
	absolutePath string
	relativePath string
	size         uint64
}

// walkFiles recursively lists every regular file under root, reporting
// paths relative to root using forward slashes regardless of host OS
// (so checksum files created on one platform verify cleanly on
// another). Symlinks are never followed: the original's
// FindFirstFileEx/FindNextFile walk has no equivalent concept on
// Windows, and skipping them here keeps behavior identical across
// platforms rather than silently depending on the host filesystem.
func walkFiles(root string) ([]fileInfo, error) {
	var out []fileInfo
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, fileInfo{
			absolutePath: path,
			relativePath: filepath.ToSlash(rel),
			size:         uint64(info.Size()),
		})
		return nil
	})
	if err != nil {
		return nil, errors.New(errors.FileIO, "walk", err).WithFile(root)
	}
	return out, nil
}
