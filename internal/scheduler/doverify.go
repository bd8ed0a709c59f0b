package scheduler

import (
	"context"
	goerrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/standardbeagle/quickersfv/internal/diag"
	"github.com/standardbeagle/quickersfv/internal/fileio"
)

// doVerify checks every entry of op's checksum file against the file
// it references, grounded on OperationScheduler::doVerify. Entries are
// resolved relative to the checksum file's own directory, just as the
// original resolves each entry's path relative to the .sfv/.md5 file
// rather than the process's working directory.
func doVerify(ctx context.Context, op VerifyOp) error {
	eh := op.EventHandler

	in, err := fileio.OpenInput(op.SourceFile)
	if err != nil {
		return err
	}
	checksums, err := op.Provider.ReadFromFile(in)
	fileio.Close(in)
	if err != nil {
		return err
	}

	entries := checksums.Entries()
	baseDir := filepath.Dir(op.SourceFile)

	eh.OperationStarted(uint32(len(entries)))

	var result Result
	result.Total = uint32(len(entries))

	for _, entry := range entries {
		if ctx.Err() != nil {
			result.WasCanceled = true
			break
		}

		absPath := filepath.Join(baseDir, filepath.FromSlash(entry.Path))
		eh.FileStarted(entry.Path, absPath)
		diag.FileStarted(absPath)

		target, err := fileio.OpenInput(absPath)
		if err != nil {
			if goerrors.Is(err, fs.ErrNotExist) {
				result.Missing++
				eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusMissing)
				continue
			}
			result.Bad++
			eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusBad)
			continue
		}

		size, err := target.FileSize()
		if err != nil {
			fileio.Close(target)
			result.Bad++
			eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusBad)
			continue
		}

		// A cache hit on unchanged (path, size, mtime) reports Ok
		// without touching file bytes, an opt-in pre-check layered
		// ahead of the always-re-hash path below.
		var modNano int64
		if op.Cache != nil {
			if fi, statErr := os.Stat(absPath); statErr == nil {
				modNano = fi.ModTime().UnixNano()
				if status, hit := op.Cache.Lookup(absPath, size, modNano); hit && status == StatusOk {
					fileio.Close(target)
					result.Ok++
					eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusOk)
					diag.FileCompleted(absPath, StatusOk.String())
					continue
				}
			}
		}

		hasher, err := op.Provider.CreateHasher(op.Options)
		if err != nil {
			fileio.Close(target)
			return err
		}

		onProgress := func(percent, bandwidth uint32) {
			eh.Progress(percent, bandwidth)
			diag.Progress(absPath, percent, bandwidth)
		}
		digest, canceled, err := hashFile(ctx, target, hasher, 0, size, onProgress)
		fileio.Close(target)

		if canceled {
			result.WasCanceled = true
			break
		}
		if err != nil {
			result.Bad++
			eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusBad)
			diag.FileCompleted(absPath, StatusBad.String())
			continue
		}

		if digest.Equal(entry.Digest) {
			result.Ok++
			eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusOk)
			diag.FileCompleted(absPath, StatusOk.String())
			if op.Cache != nil {
				op.Cache.Store(absPath, size, modNano, StatusOk)
			}
		} else {
			result.Bad++
			eh.FileCompleted(entry.Path, entry.Digest, absPath, StatusBad)
			diag.FileCompleted(absPath, StatusBad.String())
		}
	}

	if result.WasCanceled {
		eh.Canceled()
		diag.Canceled("verify")
	}
	eh.OperationCompleted(result)
	diag.OperationCompleted("verify")
	return nil
}
