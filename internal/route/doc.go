// Package route models the spandx routing table. A route maps a URL path
// prefix to either a local directory (DiskRoute) or a remote origin (WebRoute),
// and the table keeps the order in which routes were declared.
package route
