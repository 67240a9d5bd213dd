// Package processor derives everything the serving layer needs from a merged
// spandx configuration: routes split by kind, the local paths to watch for
// reloads, the rewrite rules that keep links pointing at the proxy, and the
// effective protocol, URL and verbosity.
//
// Process is a pure function of the configuration and the config directory.
// It never fails: a web route without a host yields a rewrite rule with no
// pattern, which callers must be prepared to skip.
package processor
