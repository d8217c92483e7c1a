package binary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/snapvault/pkg/binary"
)

func TestMaybeStringRoundTrip(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x0d}
	buf = append(buf, []byte("Hello, world!")...)

	r := binary.NewReader(buf)
	s, err := r.MaybeString()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Hello, world!", *s)
	assert.Equal(t, 0, r.Remaining())
}

func TestMaybeStringAbsent(t *testing.T) {
	r := binary.NewReader([]byte{0x00})
	s, err := r.MaybeString()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestTimestampFixture(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}
	r := binary.NewReader(buf)
	ts, err := r.Timestamp()
	require.NoError(t, err)
	require.NotNil(t, ts)
	want := time.Date(1970, 1, 1, 0, 0, 0, 256*int(time.Millisecond), time.UTC)
	assert.True(t, want.Equal(*ts), "got %s want %s", ts, want)
}

func TestTimestampAbsent(t *testing.T) {
	r := binary.NewReader([]byte{0x00})
	ts, err := r.Timestamp()
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestBool(t *testing.T) {
	r := binary.NewReader([]byte{0x00, 0x01, 0xff})
	v, err := r.Bool()
	require.NoError(t, err)
	assert.False(t, v)

	v, err = r.Bool()
	require.NoError(t, err)
	assert.True(t, v)

	v, err = r.Bool()
	require.NoError(t, err)
	assert.True(t, v)
}

func TestSHAStringRoundTrip(t *testing.T) {
	hexStr := "0123456789abcdef0123456789abcdef01234567"
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x28}
	buf = append(buf, []byte(hexStr)...)

	r := binary.NewReader(buf)
	sha, err := r.SHAString()
	require.NoError(t, err)
	assert.Equal(t, hexStr, sha.String())
}

func TestSHAStringInvalidHex(t *testing.T) {
	hexStr := "not-a-valid-sha-hex-string-of-len-forty!"
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, byte(len(hexStr))}
	buf = append(buf, []byte(hexStr)...)

	r := binary.NewReader(buf)
	_, err := r.SHAString()
	require.ErrorIs(t, err, binary.ErrInvalidSHAString)
}

func TestMaybeSHAStringAbsent(t *testing.T) {
	r := binary.NewReader([]byte{0x00})
	sha, err := r.MaybeSHAString()
	require.NoError(t, err)
	assert.Nil(t, sha)
}

func TestSHABinary(t *testing.T) {
	raw := make([]byte, binary.SHA1Len)
	for i := range raw {
		raw[i] = byte(i)
	}
	r := binary.NewReader(raw)
	sha, err := r.SHABinary()
	require.NoError(t, err)
	assert.Equal(t, raw, sha[:])
}

func TestCompressionType(t *testing.T) {
	r := binary.NewReader([]byte{0x00, 0x00, 0x00, 0x02})
	ct, err := r.CompressionType()
	require.NoError(t, err)
	assert.Equal(t, binary.CompressionLZ4, ct)
}

func TestCompressionTypeInvalidTag(t *testing.T) {
	r := binary.NewReader([]byte{0x00, 0x00, 0x00, 0x09})
	_, err := r.CompressionType()
	require.ErrorIs(t, err, binary.ErrInvalidCompressionType)
}

func TestVersionHeader(t *testing.T) {
	r := binary.NewReader([]byte("CommitV012rest"))
	v, err := r.VersionHeader("CommitV")
	require.NoError(t, err)
	assert.Equal(t, 12, v)
	rest, err := r.Bytes(4)
	require.NoError(t, err)
	assert.Equal(t, "rest", string(rest))
}

func TestVersionHeaderWrongPrefix(t *testing.T) {
	r := binary.NewReader([]byte("TreeV018"))
	_, err := r.VersionHeader("CommitV")
	require.ErrorIs(t, err, binary.ErrInvalidVersionHeader)
}

func TestVersionHeaderNonDigitSuffix(t *testing.T) {
	r := binary.NewReader([]byte("CommitVabc"))
	_, err := r.VersionHeader("CommitV")
	require.ErrorIs(t, err, binary.ErrInvalidVersionHeader)
}

func TestTruncatedReadsFail(t *testing.T) {
	r := binary.NewReader([]byte{0x01, 0x00})
	_, err := r.Uint64()
	require.ErrorIs(t, err, binary.ErrTruncated)
}

func TestUnwrapCompressionType(t *testing.T) {
	trueFlag, falseFlag := true, false
	gzip := binary.CompressionGZip

	assert.Equal(t, binary.CompressionGZip, binary.UnwrapCompressionType(&trueFlag, nil))
	assert.Equal(t, binary.CompressionNone, binary.UnwrapCompressionType(&falseFlag, nil))
	assert.Equal(t, binary.CompressionGZip, binary.UnwrapCompressionType(nil, &gzip))
	assert.Equal(t, binary.CompressionNone, binary.UnwrapCompressionType(nil, nil))
}
