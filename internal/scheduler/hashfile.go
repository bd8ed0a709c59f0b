package scheduler

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/quickersfv/internal/fileio"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/provider"
)

// hashFileBufferSize is the read-ahead chunk size, matching the
// original's HASH_FILE_BUFFER_SIZE (4 MiB); bandwidth samples are
// only taken on reads that fill a whole buffer, the same gating the
// original used to avoid a short final read skewing the average.
const hashFileBufferSize = 4 << 20

type readChunk struct {
	buf []byte
	n   int
	dur time.Duration
	err error
}

// hashFile hashes dataSize bytes of in starting at dataOffset,
// reporting percentage progress and rolling bandwidth through
// onProgress. It mirrors the original's double-buffered OVERLAPPED
// read-ahead: a producer goroutine keeps the next chunk in flight
// (over a depth-1 channel) while the caller hashes the chunk already
// read, so I/O and hashing overlap the same way OVERLAPPED reads did.
// Cancellation through ctx is checked between chunks, same as the
// original's WaitForMultipleObjects([cancelEvent, readEvent]).
func hashFile(ctx context.Context, in fileio.FileInput, hasher provider.Hasher, dataOffset, dataSize uint64, onProgress func(percent, bandwidthMiBs uint32)) (digest.Digest, bool, error) {
	if dataSize == 0 {
		d, err := hasher.Finalize()
		return d, false, err
	}

	if _, err := in.Seek(int64(dataOffset), fileio.SeekFileStart); err != nil {
		return nil, false, err
	}

	chunks := make(chan readChunk, 1)
	stop := make(chan struct{})

	// The producer runs under an errgroup rather than a bare `go`
	// statement so hashFile can always join it before returning — the
	// idiomatic-Go analogue of the original's two-handle
	// WaitForMultipleObjects([cancelEvent, readEvent]) pairing a
	// read-ahead thread with the consumer.
	var g errgroup.Group
	g.Go(func() error {
		for {
			buf := make([]byte, hashFileBufferSize)
			start := time.Now()
			n, _, err := in.Read(buf)
			chunk := readChunk{buf: buf, n: n, dur: time.Since(start), err: err}
			select {
			case chunks <- chunk:
			case <-stop:
				return nil
			}
			if err != nil || n == 0 {
				return nil
			}
		}
	})
	defer func() {
		close(stop)
		g.Wait()
	}()

	bandwidth := newSlidingWindow(10)
	var bytesHashed uint64
	var lastPercent uint32

	for bytesHashed < dataSize {
		select {
		case <-ctx.Done():
			return nil, true, nil
		case chunk := <-chunks:
			if chunk.err != nil {
				return nil, false, chunk.err
			}
			if chunk.n == 0 {
				bytesHashed = dataSize
				break
			}

			n := chunk.n
			if remaining := dataSize - bytesHashed; uint64(n) > remaining {
				n = int(remaining)
			}
			if err := hasher.AddData(chunk.buf[:n]); err != nil {
				return nil, false, err
			}
			bytesHashed += uint64(n)

			if chunk.n == hashFileBufferSize && chunk.dur > 0 {
				mibPerSec := (float64(hashFileBufferSize) / (1024 * 1024)) / chunk.dur.Seconds()
				bandwidth.push(mibPerSec)
			}

			percent := uint32(bytesHashed * 100 / dataSize)
			if percent != lastPercent {
				lastPercent = percent
				if onProgress != nil {
					onProgress(percent, uint32(bandwidth.rollingAverage()))
				}
			}
		}
	}

	d, err := hasher.Finalize()
	return d, false, err
}
