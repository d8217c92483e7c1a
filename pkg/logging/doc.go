// Package logging wraps zerolog with the process-wide Logger, Config
// and component-scoped child-logger helpers used across snapvault.
package logging
