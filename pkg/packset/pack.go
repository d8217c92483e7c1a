package packset

import (
	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// packHeaderLen is the fixed, uninterpreted header every pack file
// begins with; entry offsets are relative to the start of this header,
// so byte 16 is where the first PackedObject's mime field begins.
const packHeaderLen = 16

// PackedObject is one object stored in a pack file: its content plus
// the optional MIME type and filename Arq annotates some blobs with.
type PackedObject struct {
	MIMEType *string
	Name     *string
	Content  []byte
}

func parsePackedObject(data []byte) (PackedObject, error) {
	r := binary.NewReader(data)

	mime, err := r.MaybeString()
	if err != nil {
		return PackedObject{}, repoerr.MalformedData(err)
	}
	name, err := r.MaybeString()
	if err != nil {
		return PackedObject{}, repoerr.MalformedData(err)
	}
	length, err := r.Uint64()
	if err != nil {
		return PackedObject{}, repoerr.MalformedData(err)
	}
	content, err := r.Bytes(int(length))
	if err != nil {
		return PackedObject{}, repoerr.MalformedData(err)
	}

	return PackedObject{MIMEType: mime, Name: name, Content: content}, nil
}
