package record

import (
	"encoding/binary"
	"fmt"
)

// builder assembles a binary record fixture byte-by-byte using the
// same grammar pkg/binary.Reader decodes, for use in tests that need
// precise control over version gates.
type builder struct {
	buf []byte
}

func (b *builder) Bool(v bool) *builder {
	if v {
		b.buf = append(b.buf, 1)
	} else {
		b.buf = append(b.buf, 0)
	}
	return b
}

func (b *builder) U32(v uint32) *builder {
	var x [4]byte
	binary.BigEndian.PutUint32(x[:], v)
	b.buf = append(b.buf, x[:]...)
	return b
}

func (b *builder) U64(v uint64) *builder {
	var x [8]byte
	binary.BigEndian.PutUint64(x[:], v)
	b.buf = append(b.buf, x[:]...)
	return b
}

func (b *builder) I32(v int32) *builder { return b.U32(uint32(v)) }
func (b *builder) I64(v int64) *builder { return b.U64(uint64(v)) }

func (b *builder) Raw(p []byte) *builder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *builder) sizedString(s string) *builder {
	return b.U64(uint64(len(s))).Raw([]byte(s))
}

func (b *builder) MaybeStringAbsent() *builder {
	return b.Bool(false)
}

func (b *builder) MaybeStringPresent(s string) *builder {
	b.Bool(true)
	return b.sizedString(s)
}

func (b *builder) NonNullString(s string) *builder {
	return b.MaybeStringPresent(s)
}

func (b *builder) SHAString(hex string) *builder {
	return b.NonNullString(hex)
}

func (b *builder) MaybeSHAStringAbsent() *builder {
	return b.MaybeStringAbsent()
}

func (b *builder) MaybeSHAStringPresent(hex string) *builder {
	return b.MaybeStringPresent(hex)
}

func (b *builder) TimestampAbsent() *builder {
	return b.Bool(false)
}

func (b *builder) TimestampPresent(ms uint64) *builder {
	b.Bool(true)
	return b.U64(ms)
}

func (b *builder) VersionHeader(prefix string, version int) *builder {
	b.Raw([]byte(prefix))
	return b.Raw([]byte(fmt.Sprintf("%03d", version)))
}

func (b *builder) Bytes() []byte {
	return b.buf
}

const testSHAHex = "0123456789abcdef0123456789abcdef01234567"
