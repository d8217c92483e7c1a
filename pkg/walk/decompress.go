package walk

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/cuemby/snapvault/pkg/binary"
	"github.com/cuemby/snapvault/pkg/repoerr"
)

// decompress inflates data per the tree entry's recorded compression
// type. CompressionNone passes the bytes through unchanged.
func decompress(data []byte, ct binary.CompressionType) ([]byte, error) {
	switch ct {
	case binary.CompressionNone:
		return data, nil
	case binary.CompressionGZip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		return out, nil
	case binary.CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, repoerr.MalformedData(err)
		}
		return out, nil
	default:
		return nil, repoerr.MalformedData(errUnknownCompressionType)
	}
}
