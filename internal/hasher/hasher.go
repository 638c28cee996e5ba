// Package hasher implements the Chunk Hasher (spec.md §4.4): a
// deterministic 256-bit content fingerprint computed from a fixed sampling
// policy so that hashing huge videos doesn't dominate wall-clock time.
package hasher

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/ivoronin/mediasweep/internal/model"
)

// ChunkSize (C) is the head/tail probe size: 1 MiB.
const ChunkSize = 1 << 20 // 1,048,576 bytes

// blockSize is the read buffer size used while streaming into the hasher.
const blockSize = 64 * 1024

// Fingerprint computes the 256-bit content fingerprint of the file at
// path, per the policy in spec.md §4.4:
//
//   - size <= 2*ChunkSize: hash the entire file, streamed in blockSize reads.
//   - size > 2*ChunkSize: hash the first ChunkSize bytes, then the last
//     ChunkSize bytes.
//
// Returns a model.IoError (wrapping the cause) if the file cannot be read.
func Fingerprint(path string) (model.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
	}
	size := info.Size()

	h := sha256.New()
	buf := make([]byte, blockSize)

	if size <= 2*ChunkSize {
		if _, err := io.CopyBuffer(h, f, buf); err != nil {
			return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
		}
	} else {
		if _, err := io.CopyBuffer(h, io.LimitReader(f, ChunkSize), buf); err != nil {
			return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
		}
		if _, err := f.Seek(size-ChunkSize, io.SeekStart); err != nil {
			return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
		}
		if _, err := io.CopyBuffer(h, io.LimitReader(f, ChunkSize), buf); err != nil {
			return model.Fingerprint{}, &model.IoError{Path: path, Cause: err}
		}
	}

	var fp model.Fingerprint
	sum := h.Sum(nil)
	if n := copy(fp[:], sum); n != len(fp) {
		return model.Fingerprint{}, fmt.Errorf("hasher: unexpected digest length %d", n)
	}
	return fp, nil
}
