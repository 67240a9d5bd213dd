package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ResolveHome replaces a leading "~" with the current user's home directory.
// Any other path is returned unchanged, as is the input when the home
// directory cannot be determined.
func ResolveHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := homedir.Dir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// Resolve returns the absolute, cleaned form of path. Home-relative paths are
// expanded first, then relative paths are joined onto base. A relative base
// is taken from the working directory.
func Resolve(base, path string) string {
	resolved := ResolveHome(path)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(base, resolved)
	}

	if !filepath.IsAbs(resolved) {
		if abs, err := filepath.Abs(resolved); err == nil {
			resolved = abs
		}
	}

	return filepath.Clean(resolved)
}
