// Package crypto derives AES key material from a passphrase and a
// per-repository salt, and decrypts both the V1-enveloped bucket and
// computer metadata objects and the un-enveloped pack payload blobs.
package crypto
