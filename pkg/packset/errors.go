package packset

import "errors"

var (
	errBadIndexMagic       = errors.New("packset: index file has wrong magic bytes")
	errUnrecognizedPackKey = errors.New("packset: key does not contain a recognizable pack id")
	errUnknownHash         = errors.New("packset: hash not present in any index")
)
