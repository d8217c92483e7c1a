// Package record decodes the two versioned record types stored as
// pack objects: commit records (snapshot descriptors) and tree records
// (directory descriptors). Both share the schema-gating style of the
// format: a 3-digit version embedded in the record's literal header
// selects which trailing fields are present, so every field read here
// is conditioned on the version number already parsed from that
// header.
package record
