// Package pathutil resolves user-written paths from the spandx config into
// absolute filesystem paths.
package pathutil
