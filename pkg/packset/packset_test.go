package packset_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	pkgbinary "github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/key"
	"github.com/cuemby/snapvault/pkg/packset"
	"github.com/cuemby/snapvault/pkg/store"
)

func u64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func u32(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

// buildIndex builds a minimal single-entry .index body: a flat counts
// table with count[255] == 1 is sufficient since no other field reads
// the histogram.
func buildIndex(offset uint64, length uint64, sha pkgbinary.SHA1) []byte {
	buf := []byte{0xff, 0x74, 0x4f, 0x63}
	buf = append(buf, u32(1)...)
	counts := make([]byte, 256*4)
	binary.BigEndian.PutUint32(counts[255*4:], 1)
	buf = append(buf, counts...)
	buf = append(buf, u64(offset)...)
	buf = append(buf, u64(length)...)
	buf = append(buf, sha[:]...)
	buf = append(buf, 0, 0, 0, 0)
	return buf
}

func buildPack(content []byte) []byte {
	header := make([]byte, 16)
	buf := append([]byte{}, header...)
	buf = append(buf, 0x00)           // mime absent
	buf = append(buf, 0x00)           // name absent
	buf = append(buf, u64(uint64(len(content)))...)
	buf = append(buf, content...)
	return buf
}

func TestPacksetNewAndLoadResolvesHash(t *testing.T) {
	dir := t.TempDir()
	disk := store.NewLocalDisk(dir)

	var sha pkgbinary.SHA1
	for i := range sha {
		sha[i] = byte(i + 1)
	}
	content := []byte("packed object payload bytes")

	root := key.New("packsets/FOLDER-trees")
	packID := pkgbinary.SHA1{}
	for i := range packID {
		packID[i] = byte(0xA0 + i)
	}

	indexBlob := buildIndex(16, uint64(len(content)), sha)
	packBlob := buildPack(content)

	require.NoError(t, disk.Put(root.Join(packID.String()+".index"), indexBlob))
	require.NoError(t, disk.Put(root.Join(packID.String()+".pack"), packBlob))

	ps, err := packset.New(context.Background(), root, disk)
	require.NoError(t, err)

	obj, err := ps.Load(context.Background(), sha)
	require.NoError(t, err)
	require.Equal(t, content, obj.Content)
	require.Nil(t, obj.MIMEType)
	require.Nil(t, obj.Name)
}

func TestPacksetLoadUnknownHashFails(t *testing.T) {
	dir := t.TempDir()
	disk := store.NewLocalDisk(dir)
	root := key.New("packsets/FOLDER-trees")

	ps, err := packset.New(context.Background(), root, disk)
	require.NoError(t, err)

	_, err = ps.Load(context.Background(), pkgbinary.SHA1{})
	require.Error(t, err)
}
