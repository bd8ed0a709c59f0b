// Package diag provides the scheduler's operation/event trace output.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableTrace is a build flag, overridable via -ldflags:
// go build -ldflags "-X github.com/standardbeagle/quickersfv/internal/diag.EnableTrace=true"
var EnableTrace = "false"

var (
	mu     sync.Mutex
	output io.Writer
)

// SetOutput sets the writer trace lines are written to. Pass nil to
// disable output entirely regardless of Enable.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// enabled tracks a runtime override independent of the build flag.
var enabled = false

// Enable toggles tracing at runtime (e.g. a CLI --trace flag).
func Enable(on bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = on
}

// IsEnabled reports whether trace output is currently active.
func IsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		return true
	}
	if EnableTrace == "true" {
		return true
	}
	return os.Getenv("QUICKERSFV_TRACE") == "1"
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// Tracef writes a formatted trace line when tracing is enabled and an
// output writer has been configured.
func Tracef(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[trace] "+format+"\n", args...)
}

// The functions below are the scheduler's structured tracing hooks,
// one per event kind it emits. They are thin wrappers over Tracef so
// the scheduler's worker loop never has to format its own messages.

// OperationStarted traces the start of a verify/create job.
func OperationStarted(kind string, nFiles int) {
	Tracef("operation started: kind=%s files=%d", kind, nFiles)
}

// FileStarted traces the scheduler beginning work on a single file.
func FileStarted(path string) {
	Tracef("file started: %s", path)
}

// Progress traces a percentage/bandwidth update for the file in flight.
func Progress(path string, percent, bandwidthMiBs uint32) {
	Tracef("progress: %s %d%% %dMiB/s", path, percent, bandwidthMiBs)
}

// FileCompleted traces the terminal status of a single file.
func FileCompleted(path, status string) {
	Tracef("file completed: %s status=%s", path, status)
}

// OperationCompleted traces normal completion of a job.
func OperationCompleted(kind string) {
	Tracef("operation completed: kind=%s", kind)
}

// Canceled traces cooperative cancellation of a job.
func Canceled(kind string) {
	Tracef("operation canceled: kind=%s", kind)
}

// Error traces an error surfaced during a job.
func Error(kind string, err error) {
	Tracef("operation error: kind=%s err=%v", kind, err)
}
