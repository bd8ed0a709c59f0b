// Package scheduler runs verify and create operations on a single
// background worker goroutine, mirroring quicker_sfv::gui::OperationScheduler's
// queued-operation/event-stream design. Where the original marshals
// events back onto a Win32 UI thread via PostThreadMessage, this port
// has no UI thread to marshal onto (the CLI has no message loop), so
// EventHandler callbacks are invoked directly from the worker
// goroutine instead of being queued and later pumped — still an
// ordered stream, just without the cross-thread hop a GUI would need.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/standardbeagle/quickersfv/internal/diag"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/provider"
)

// CompletionStatus is the per-file outcome reported through
// EventHandler.FileCompleted.
type CompletionStatus int

const (
	StatusOk CompletionStatus = iota
	StatusBad
	StatusMissing
)

func (s CompletionStatus) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusMissing:
		return "missing"
	default:
		return "bad"
	}
}

// Result summarizes a completed operation.
type Result struct {
	Total       uint32
	Ok          uint32
	Bad         uint32
	Missing     uint32
	WasCanceled bool
}

// EventHandler receives the ordered stream of events a running
// operation produces.
type EventHandler interface {
	OperationStarted(nFiles uint32)
	FileStarted(file, absoluteFilePath string)
	Progress(percentage, bandwidthMiBs uint32)
	FileCompleted(file string, checksum digest.Digest, absoluteFilePath string, status CompletionStatus)
	OperationCompleted(r Result)
	Canceled()
	Error(err error)
}

// VerifyOp checks every entry of an existing checksum file against
// the files it references.
type VerifyOp struct {
	EventHandler EventHandler
	Options      provider.HasherOptions
	SourceFile   string
	Provider     provider.ChecksumProvider
	// Cache, if set, is consulted before re-hashing each entry and
	// updated with fresh Ok results. Leave nil to always re-hash
	// (spec.md's default behavior).
	Cache *VerifyCache
}

// CreateOp hashes every file under FolderPath and writes a new
// checksum file at TargetFile.
type CreateOp struct {
	EventHandler EventHandler
	Options      provider.HasherOptions
	TargetFile   string
	FolderPath   string
	Provider     provider.ChecksumProvider
}

// Scheduler runs posted operations one at a time on a background
// goroutine, the same single-worker-thread design as the original.
type Scheduler struct {
	ops chan any

	mu         sync.Mutex
	cancel     context.CancelFunc
	shutdownWg sync.WaitGroup
}

// New creates a Scheduler. Start must be called before posting
// operations.
func New() *Scheduler {
	return &Scheduler{ops: make(chan any, 16)}
}

// Start launches the worker goroutine.
func (s *Scheduler) Start() {
	s.shutdownWg.Add(1)
	go s.worker()
}

// Shutdown stops accepting new operations, cancels any operation in
// flight, and waits for the worker to exit.
func (s *Scheduler) Shutdown() {
	close(s.ops)
	s.Cancel()
	s.shutdownWg.Wait()
}

// Post enqueues op (a VerifyOp or CreateOp) to run on the worker.
func (s *Scheduler) Post(op any) {
	s.ops <- op
}

// Cancel requests cancellation of whichever operation is currently
// running.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Scheduler) worker() {
	defer s.shutdownWg.Done()
	for op := range s.ops {
		s.mu.Lock()
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.mu.Unlock()

		switch o := op.(type) {
		case VerifyOp:
			diag.OperationStarted("verify", 0)
			if err := doVerify(ctx, o); err != nil {
				diag.Error("verify", err)
				o.EventHandler.Error(err)
			}
		case CreateOp:
			diag.OperationStarted("create", 0)
			if err := doCreate(ctx, o); err != nil {
				diag.Error("create", err)
				o.EventHandler.Error(err)
			}
		default:
			panic(fmt.Sprintf("scheduler: unknown operation type %T", op))
		}
		cancel()
	}
}
