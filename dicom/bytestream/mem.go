package bytestream

import "fmt"

// memStream is a cursor-based view over a byte slice. It backs both
// "owned" streams (the slice was allocated/moved in for this stream alone)
// and "borrowed" streams (the caller guarantees the slice outlives the
// stream) — Go's garbage collector makes the ownership distinction moot
// for memory safety, but NewOwnedStream/NewMemStream are kept as
// separate constructors to document caller intent, matching the
// ownership story spec'd for this component.
type memStream struct {
	data   []byte
	cursor int64
}

// NewMemStream wraps an existing byte slice as a Stream. The slice is
// borrowed: callers must not mutate it while the stream (or any sub-stream
// derived from it) is in use.
func NewMemStream(data []byte) Stream {
	return &memStream{data: data}
}

// NewOwnedStream is equivalent to NewMemStream, documenting that data was
// allocated specifically for this stream (e.g. a decompressed buffer) and
// has no other owner.
func NewOwnedStream(data []byte) Stream {
	return &memStream{data: data}
}

func (m *memStream) Read(n int) ([]byte, error) {
	if err := boundsCheck(m.cursor, n, int64(len(m.data))); err != nil {
		return nil, err
	}
	start := m.cursor
	m.cursor += int64(n)
	return m.data[start : start+int64(n)], nil
}

func (m *memStream) Peek(n int) ([]byte, error) {
	if err := boundsCheck(m.cursor, n, int64(len(m.data))); err != nil {
		return nil, err
	}
	return m.data[m.cursor : m.cursor+int64(n)], nil
}

func (m *memStream) Skip(n int) error {
	if err := boundsCheck(m.cursor, n, int64(len(m.data))); err != nil {
		return err
	}
	m.cursor += int64(n)
	return nil
}

func (m *memStream) Span(offset, n int) ([]byte, error) {
	if err := boundsCheck(int64(offset), n, int64(len(m.data))); err != nil {
		return nil, err
	}
	return m.data[offset : offset+n], nil
}

func (m *memStream) Tell() int64 {
	return m.cursor
}

func (m *memStream) Seek(pos int64) error {
	if pos < 0 || pos > int64(len(m.data)) {
		return fmt.Errorf("%w: seek position %d outside [0, %d]", ErrOutOfRange, pos, len(m.data))
	}
	m.cursor = pos
	return nil
}

func (m *memStream) Unread(n int) error {
	if m.cursor-int64(n) < 0 {
		return fmt.Errorf("%w: unread %d would move cursor before start", ErrOutOfRange, n)
	}
	m.cursor -= int64(n)
	return nil
}

func (m *memStream) Len() int64 {
	return int64(len(m.data))
}

func (m *memStream) Remaining() int64 {
	return int64(len(m.data)) - m.cursor
}

func (m *memStream) SubStream(n int) (Stream, error) {
	remaining := m.Remaining()
	if int64(n) > remaining {
		n = int(remaining)
	}
	if n < 0 {
		n = 0
	}
	view, err := m.Read(n)
	if err != nil {
		return nil, err
	}
	return &memStream{data: view}, nil
}
