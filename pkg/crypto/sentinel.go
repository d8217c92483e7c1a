package crypto

import "errors"

var (
	errCiphertextNotBlockAligned = errors.New("ciphertext is not a multiple of the AES block size")
	errInvalidPadding            = errors.New("invalid PKCS7 padding")
)
