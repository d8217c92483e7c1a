// Package config decodes the TOML repository-connection document that
// points snapvault at a bucket: storage class, credentials, region and
// bucket name. The passphrase never lives here; it is threaded
// separately from a CLI flag or environment variable.
package config
