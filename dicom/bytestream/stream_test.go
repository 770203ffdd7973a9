package bytestream_test

import (
	"testing"

	"github.com/cairnmed/dicom/dicom/bytestream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStream_ReadAdvancesCursor(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4, 5})

	b, err := s.Read(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, int64(2), s.Tell())

	b, err = s.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4, 5}, b)
	assert.Equal(t, int64(5), s.Tell())
}

func TestMemStream_ReadPastEndFails(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3})
	_, err := s.Read(4)
	assert.ErrorIs(t, err, bytestream.ErrOutOfRange)
	assert.Equal(t, int64(0), s.Tell(), "cursor must not advance on a short read")
}

func TestMemStream_PeekDoesNotAdvance(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4})
	b, err := s.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, int64(0), s.Tell())
}

func TestMemStream_Skip(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4, 5})
	require.NoError(t, s.Skip(3))
	assert.Equal(t, int64(3), s.Tell())

	err := s.Skip(10)
	assert.ErrorIs(t, err, bytestream.ErrOutOfRange)
}

func TestMemStream_Span(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4, 5})
	b, err := s.Span(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 3, 4}, b)

	_, err = s.Span(3, 10)
	assert.ErrorIs(t, err, bytestream.ErrOutOfRange)
}

func TestMemStream_SeekAndUnread(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4, 5})
	require.NoError(t, s.Seek(3))
	assert.Equal(t, int64(3), s.Tell())

	require.NoError(t, s.Unread(2))
	assert.Equal(t, int64(1), s.Tell())

	assert.Error(t, s.Unread(5))
	assert.Error(t, s.Seek(-1))
	assert.Error(t, s.Seek(100))
}

func TestMemStream_SubStreamSharesBackingArray(t *testing.T) {
	root := bytestream.NewMemStream([]byte{0xAA, 1, 2, 3, 4, 0xBB})
	require.NoError(t, root.Skip(1))

	sub, err := root.SubStream(4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sub.Len())

	b, err := sub.Read(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)

	// The root's cursor advanced past the sub-stream's extent.
	assert.Equal(t, int64(5), root.Tell())
}

func TestMemStream_SubStreamClampsToRemainder(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3})
	sub, err := s.SubStream(10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sub.Len())
}

func TestMemStream_Remaining(t *testing.T) {
	s := bytestream.NewMemStream([]byte{1, 2, 3, 4})
	assert.Equal(t, int64(4), s.Remaining())
	require.NoError(t, s.Skip(1))
	assert.Equal(t, int64(3), s.Remaining())
}

func TestEndianHelpers(t *testing.T) {
	le := []byte{0x10, 0x20}
	assert.Equal(t, uint16(0x2010), bytestream.Uint16LE(le))
	assert.Equal(t, uint16(0x1020), bytestream.Uint16BE(le))

	le4 := []byte{0x01, 0x02, 0x03, 0x04}
	assert.Equal(t, uint32(0x04030201), bytestream.Uint32LE(le4))
	assert.Equal(t, uint32(0x01020304), bytestream.Uint32BE(le4))
}

func TestTagLE(t *testing.T) {
	group, element := bytestream.TagLE([]byte{0x08, 0x00, 0x20, 0x00})
	assert.Equal(t, uint16(0x0008), group)
	assert.Equal(t, uint16(0x0020), element)
}
