package crypto

import (
	"crypto/sha1" //nolint:gosec // required by the repository's key-derivation procedure
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 1000
	pbkdf2SeedLen    = 48
	aesKeyLen        = 32
	aesIVLen         = 16

	// BucketSalt is the fixed ASCII salt used to derive the bucket
	// decrypter, as opposed to a computer's own per-repository salt.
	BucketSalt = "BucketPL"
)

// AESMaterial is the key and IV an AES-256-CBC cipher needs.
type AESMaterial struct {
	Key [aesKeyLen]byte
	IV  [aesIVLen]byte
}

// DeriveAESMaterial derives AES-256 key and IV bytes from a passphrase
// and salt in two stages: a PBKDF2-HMAC-SHA1 seed, then the classic
// EVP_BytesToKey split of that seed (both stages run 1000 iterations
// of SHA-1, and both use the same salt).
func DeriveAESMaterial(passphrase string, salt []byte) AESMaterial {
	seed := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, pbkdf2SeedLen, sha1.New)
	keyBytes, ivBytes := evpBytesToKey(seed, salt, pbkdf2Iterations, aesKeyLen, aesIVLen)

	var material AESMaterial
	copy(material.Key[:], keyBytes)
	copy(material.IV[:], ivBytes)
	return material
}

// evpBytesToKey reproduces OpenSSL's classic EVP_BytesToKey
// construction: repeatedly hash (previous digest || data || salt),
// iterating the hash `iterations` times per block, concatenating
// blocks until there are enough bytes for the requested key and IV.
func evpBytesToKey(data, salt []byte, iterations, keyLen, ivLen int) (key, iv []byte) {
	var prev []byte
	var out []byte

	for len(out) < keyLen+ivLen {
		sum := hashOnce(sha1.New(), prev, data, salt)
		for i := 1; i < iterations; i++ {
			sum = hashOnce(sha1.New(), sum)
		}
		prev = append([]byte(nil), sum...)
		out = append(out, sum...)
	}

	return out[:keyLen], out[keyLen : keyLen+ivLen]
}

func hashOnce(h hash.Hash, parts ...[]byte) []byte {
	h.Reset()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
