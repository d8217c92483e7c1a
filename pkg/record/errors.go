package record

import "errors"

var (
	errNullBlobKey    = errors.New("record: blob key may not be null")
	errInvalidStorage = errors.New("record: invalid storage_type tag")
)
