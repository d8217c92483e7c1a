package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
)

// envelopePrefix is the literal V1 envelope marker that precedes the
// ciphertext of bucket and computer metadata objects.
var envelopePrefix = []byte("encrypted")

// ObjectDecrypter is the capability the repository core consumes to
// turn a ciphertext object body into plaintext. It is the single
// method every decrypter implements, regardless of which salt derived
// its key material or whether it expects a V1 envelope.
type ObjectDecrypter interface {
	DecryptObject(data []byte) ([]byte, error)
}

type aesDecrypter struct {
	material        AESMaterial
	requireEnvelope bool
}

// NewContentDecrypter returns the decrypter used for pack payloads
// (commit records, tree records, file data): keyed by the computer's
// own per-repository salt, with no V1 envelope.
func NewContentDecrypter(passphrase string, computerSalt []byte) ObjectDecrypter {
	return &aesDecrypter{material: DeriveAESMaterial(passphrase, computerSalt)}
}

// NewBucketDecrypter returns the decrypter used for folder-descriptor
// blobs under .../buckets/: keyed by the fixed "BucketPL" salt, and
// requires the V1 envelope prefix.
func NewBucketDecrypter(passphrase string) ObjectDecrypter {
	return &aesDecrypter{
		material:        DeriveAESMaterial(passphrase, []byte(BucketSalt)),
		requireEnvelope: true,
	}
}

func (d *aesDecrypter) DecryptObject(data []byte) ([]byte, error) {
	ciphertext := data
	if d.requireEnvelope {
		if !bytes.HasPrefix(data, envelopePrefix) {
			return nil, newError(ErrorMalformedData, nil)
		}
		ciphertext = data[len(envelopePrefix):]
	}
	return aesCBCDecrypt(d.material, ciphertext)
}

func aesCBCDecrypt(material AESMaterial, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, newError(ErrorLibrary, errCiphertextNotBlockAligned)
	}

	block, err := aes.NewCipher(material.Key[:])
	if err != nil {
		return nil, newError(ErrorLibrary, err)
	}

	plain := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, material.IV[:])
	mode.CryptBlocks(plain, ciphertext)

	return unpadPKCS7(plain)
}

func unpadPKCS7(data []byte) ([]byte, error) {
	n := len(data)
	if n == 0 {
		return nil, newError(ErrorBadKey, errInvalidPadding)
	}
	padLen := int(data[n-1])
	if padLen == 0 || padLen > aes.BlockSize || padLen > n {
		return nil, newError(ErrorBadKey, errInvalidPadding)
	}
	for _, b := range data[n-padLen:] {
		if int(b) != padLen {
			return nil, newError(ErrorBadKey, errInvalidPadding)
		}
	}
	return data[:n-padLen], nil
}
