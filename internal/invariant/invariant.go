// Package invariant ports the original implementation's enforce():
// a panic reserved for conditions that indicate a programming error,
// never for ordinary parse or I/O failures (those use
// github.com/standardbeagle/quickersfv/internal/errors instead).
package invariant

// Check panics with msg if cond is false. Callers should treat a
// triggered invariant as a bug, not a recoverable condition: it is
// appropriate to let it unwind the current goroutine.
func Check(cond bool, msg string) {
	if !cond {
		panic("invariant violated: " + msg)
	}
}
