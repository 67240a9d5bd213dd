// Package state holds the current spandx configuration. Each load merges,
// validates and processes a configuration completely before publishing it,
// so readers always see a whole snapshot.
package state
