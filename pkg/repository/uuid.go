package repository

import (
	"strings"

	"github.com/google/uuid"
)

// formatUUID renders a UUID in the upper-case hyphenated form every
// key in the repository layout embeds it in.
func formatUUID(id uuid.UUID) string {
	return strings.ToUpper(id.String())
}

// lastPathSegment strips a trailing "/" (as produced by a DIRS listing)
// and returns the final "/"-delimited component.
func lastPathSegment(raw string) string {
	raw = strings.TrimSuffix(raw, "/")
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}
