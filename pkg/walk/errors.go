package walk

import "errors"

var errUnknownCompressionType = errors.New("walk: unknown compression type")
