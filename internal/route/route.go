package route

import (
	"encoding/json"
)

// Kind identifies which variant a Target holds.
type Kind int

const (
	KindDisk Kind = iota // local directory
	KindWeb              // remote origin
)

func (k Kind) String() string {
	switch k {
	case KindDisk:
		return "disk"
	case KindWeb:
		return "web"
	default:
		return "unknown"
	}
}

// Target is what a path prefix routes to. The only implementations are
// DiskRoute and WebRoute.
type Target interface {
	Kind() Kind
	isTarget()
}

// DiskRoute serves a local directory. The path may be absolute, relative to
// the config directory, or start with "~" for the user's home directory.
type DiskRoute string

func (DiskRoute) Kind() Kind { return KindDisk }
func (DiskRoute) isTarget() {}

// Path returns the unresolved path as written in the config.
func (d DiskRoute) Path() string {
	return string(d)
}

// WebRoute proxies to a remote origin. Watch optionally names a local path
// whose changes should trigger a browser reload even though the content is
// remote.
type WebRoute struct {
	Host  string `json:"host,omitempty"`
	Watch string `json:"watch,omitempty"`
}

func (WebRoute) Kind() Kind { return KindWeb }
func (WebRoute) isTarget() {}

// HasHost reports whether the route names an origin. An empty host is
// treated as absent.
func (w WebRoute) HasHost() bool {
	return w.Host != ""
}

// HasWatch reports whether the route names a local path to watch.
func (w WebRoute) HasWatch() bool {
	return w.Watch != ""
}

// Entry is a single (prefix, target) pair of the routing table.
type Entry struct {
	Prefix string
	Target Target
}

// MarshalJSON encodes the entry as a two element array, [prefix, target].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Prefix, e.Target})
}

// Disk builds a DiskRoute entry.
func Disk(prefix, path string) Entry {
	return Entry{Prefix: prefix, Target: DiskRoute(path)}
}

// Web builds a WebRoute entry.
func Web(prefix, host, watch string) Entry {
	return Entry{Prefix: prefix, Target: WebRoute{Host: host, Watch: watch}}
}
