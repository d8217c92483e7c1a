package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCommitV9 assembles a CommitV009 fixture by hand, following the
// field order and version gates in ParseCommit exactly.
func buildCommitV9() []byte {
	b := &builder{}
	b.VersionHeader("CommitV", 9)
	b.MaybeStringAbsent()    // author
	b.MaybeStringAbsent()    // comment
	b.U64(0)                 // parent count
	b.SHAString(testSHAHex)  // tree_sha
	b.Bool(true)             // expand_key (v>=4)
	b.Bool(false)            // is_compressed (8<=v<=9)
	// no compression_type (v<10)
	b.MaybeStringAbsent() // path
	// no common_ancestor (v>7 so absent)
	// no common_ancestor_exp (v>7 so absent)
	b.TimestampPresent(256) // timestamp
	b.U64(0)                // file_errors count (v>=3)
	b.Bool(false)           // missing_nodes (v>=8)
	b.Bool(true)            // is_complete (v>=9)
	b.U64(0) // plist length (v>=5): zero-length plist
	// no arq_version (v<12)
	return b.Bytes()
}

func TestParseCommitV9(t *testing.T) {
	data := buildCommitV9()
	c, err := ParseCommit(data)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Version)
	assert.True(t, c.ExpandKey)
	assert.NotNil(t, c.IsComplete)
	assert.True(t, *c.IsComplete)
	assert.NotNil(t, c.MissingNodes)
	assert.False(t, *c.MissingNodes)
	assert.Nil(t, c.ArqVersion)
	assert.Equal(t, testSHAHex, c.TreeSHA.String())
}

func TestParseCommitRejectsWrongPrefix(t *testing.T) {
	b := &builder{}
	b.VersionHeader("TreeV", 9)
	_, err := ParseCommit(b.Bytes())
	require.Error(t, err)
}

func TestParseCommitV12HasArqVersion(t *testing.T) {
	b := &builder{}
	b.VersionHeader("CommitV", 12)
	b.MaybeStringAbsent()   // author
	b.MaybeStringAbsent()   // comment
	b.U64(0)                // parents
	b.SHAString(testSHAHex) // tree_sha
	b.Bool(false)           // expand_key
	// no is_compressed (v>9)
	b.U32(1) // compression_type (v>=10): GZip
	b.MaybeStringAbsent() // path
	b.TimestampPresent(1000)
	b.U64(0)     // file_errors
	b.Bool(true) // missing_nodes
	b.Bool(true) // is_complete
	b.U64(0)     // plist len
	b.NonNullString("7.0")

	c, err := ParseCommit(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 12, c.Version)
	require.NotNil(t, c.ArqVersion)
	assert.Equal(t, "7.0", *c.ArqVersion)
	assert.Equal(t, "gzip", c.CompressionType.String())
}
