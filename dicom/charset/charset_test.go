package charset_test

import (
	"testing"

	"github.com/cairnmed/dicom/dicom/charset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Default(t *testing.T) {
	cs, err := charset.Resolve(nil)
	require.NoError(t, err)
	assert.Nil(t, cs.Ideographic)

	out, err := cs.Decode([]byte("SMITH^JOHN"))
	require.NoError(t, err)
	assert.Equal(t, "SMITH^JOHN", out)
}

func TestResolve_SingleTerm(t *testing.T) {
	cs, err := charset.Resolve([]string{"ISO_IR 100"})
	require.NoError(t, err)
	assert.Same(t, cs.Alphabetic, cs.Ideographic)
	assert.Same(t, cs.Ideographic, cs.Phonetic)
}

func TestResolve_UnknownTermFallsBackToASCII(t *testing.T) {
	cs, err := charset.Resolve([]string{"NOT_A_REAL_CHARSET"})
	require.NoError(t, err)
	out, err := cs.Decode([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestResolve_LatinTerm(t *testing.T) {
	cs, err := charset.Resolve([]string{"ISO_IR 101"})
	require.NoError(t, err)
	require.NotNil(t, cs.Ideographic)
}

func TestIsKnownTerm(t *testing.T) {
	assert.True(t, charset.IsKnownTerm("ISO_IR 100"))
	assert.True(t, charset.IsKnownTerm(""))
	assert.False(t, charset.IsKnownTerm("BOGUS"))
}
