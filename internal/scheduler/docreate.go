package scheduler

import (
	"context"

	"github.com/standardbeagle/quickersfv/internal/checksumfile"
	"github.com/standardbeagle/quickersfv/internal/diag"
	"github.com/standardbeagle/quickersfv/internal/fileio"
)

// doCreate walks op.FolderPath, hashes every file it finds from
// offset 0, and writes a new checksum file at op.TargetFile. Grounded
// on OperationScheduler::doCreate: unlike doVerify, a cancellation
// here aborts the whole operation immediately rather than merely
// stopping the file loop, since a partially-written checksum file
// covering only some of the folder is not a useful artifact.
func doCreate(ctx context.Context, op CreateOp) error {
	eh := op.EventHandler

	files, err := walkFiles(op.FolderPath)
	if err != nil {
		return err
	}

	eh.OperationStarted(uint32(len(files)))

	var result Result
	result.Total = uint32(len(files))
	var out checksumfile.ChecksumFile

	for _, f := range files {
		if ctx.Err() != nil {
			result.WasCanceled = true
			eh.Canceled()
			eh.OperationCompleted(result)
			return nil
		}

		eh.FileStarted(f.relativePath, f.absolutePath)
		diag.FileStarted(f.absolutePath)

		in, err := fileio.OpenInput(f.absolutePath)
		if err != nil {
			result.Bad++
			eh.FileCompleted(f.relativePath, nil, f.absolutePath, StatusBad)
			diag.FileCompleted(f.absolutePath, StatusBad.String())
			continue
		}

		hasher, err := op.Provider.CreateHasher(op.Options)
		if err != nil {
			fileio.Close(in)
			return err
		}

		onProgress := func(percent, bandwidth uint32) {
			eh.Progress(percent, bandwidth)
			diag.Progress(f.absolutePath, percent, bandwidth)
		}
		digest, canceled, err := hashFile(ctx, in, hasher, 0, f.size, onProgress)
		fileio.Close(in)

		if canceled {
			result.WasCanceled = true
			eh.Canceled()
			diag.Canceled("create")
			eh.OperationCompleted(result)
			diag.OperationCompleted("create")
			return nil
		}
		if err != nil {
			result.Bad++
			eh.FileCompleted(f.relativePath, nil, f.absolutePath, StatusBad)
			diag.FileCompleted(f.absolutePath, StatusBad.String())
			continue
		}

		if err := out.AddEntry(f.relativePath, digest); err != nil {
			return err
		}
		result.Ok++
		eh.FileCompleted(f.relativePath, digest, f.absolutePath, StatusOk)
		diag.FileCompleted(f.absolutePath, StatusOk.String())
	}

	output, err := fileio.CreateOutput(op.TargetFile)
	if err != nil {
		return err
	}
	writeErr := op.Provider.WriteNewFile(output, &out)
	fileio.CloseOutput(output)
	if writeErr != nil {
		return writeErr
	}

	eh.OperationCompleted(result)
	diag.OperationCompleted("create")
	return nil
}
