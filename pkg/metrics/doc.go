// Package metrics registers the small set of prometheus collectors
// snapvault exposes: Store fetch counts and bytes by driver, cache hit
// and miss counts, and packset objects loaded. Instrumentation is
// additive — the CLI only constructs Collectors when --metrics-addr is
// set, wiring it into pkg/store.Instrument, pkg/store.NewCache (when
// --cache-dir is also set), and
// pkg/repository.Repository.SetPacksetLoadHook; the core read path
// never depends on this package.
package metrics
