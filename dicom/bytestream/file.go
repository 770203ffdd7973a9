package bytestream

import (
	"fmt"
	"io"
	"os"
)

// fileStream is a Stream backed by a file fully read into memory. No mmap
// library exists anywhere in the reference corpus this module draws on
// (see DESIGN.md), so this substitutes a read-once buffer for the
// memory-mapped stream the spec calls for: cursor semantics and sharing
// behavior are identical to memStream, only the construction path differs.
type fileStream struct {
	memStream
	f *os.File
}

// OpenFileStream opens path and reads its entire contents into a Stream.
// The file handle is closed once fully read; the returned Stream owns the
// resulting buffer exclusively.
func OpenFileStream(path string) (Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bytestream: open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("bytestream: read %s: %w", path, err)
	}
	return &fileStream{memStream: memStream{data: data}}, nil
}
