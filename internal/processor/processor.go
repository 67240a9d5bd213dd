package processor

import (
	"fmt"
	"math"

	"github.com/angeloszaimis/spandx/config"
	"github.com/angeloszaimis/spandx/internal/route"
	"github.com/angeloszaimis/spandx/pkg/pathutil"
)

// Partition holds the routes of a table split by kind, each in declaration
// order.
type Partition struct {
	Web  []route.Entry `json:"web"`
	Disk []route.Entry `json:"disk"`
}

// Result is the data derived from a merged configuration.
type Result struct {
	RouteGroups Partition     `json:"routeGroups"`
	WebRoutes   []route.Entry `json:"webRoutes"`
	DiskRoutes  []route.Entry `json:"diskRoutes"`

	// Files is DiskRouteFiles followed by OtherLocalFiles, as is.
	DiskRouteFiles  []string `json:"diskRouteFiles"`
	OtherLocalFiles []string `json:"otherLocalFiles"`
	Files           []string `json:"files"`

	RewriteRules []RewriteRule `json:"rewriteRules"`

	Protocol  string `json:"protocol"`
	SpandxURL string `json:"spandxUrl"`
	StartPath string `json:"startPath"`
	Verbose   bool   `json:"verbose"`
	ConfigDir string `json:"configDir"`
}

// Split partitions the table into web and disk routes.
func Split(t route.Table) Partition {
	p := Partition{
		Web:  make([]route.Entry, 0, t.Len()),
		Disk: make([]route.Entry, 0, t.Len()),
	}

	for _, e := range t.Entries() {
		if e.Target != nil && e.Target.Kind() == route.KindWeb {
			p.Web = append(p.Web, e)
		} else {
			p.Disk = append(p.Disk, e)
		}
	}

	return p
}

// Process derives the Result for cfg. Relative paths are resolved against
// configDir and "~" against the user's home directory. A nil cfg is
// processed as the defaults.
func Process(cfg *config.Config, configDir string) *Result {
	if cfg == nil {
		cfg = config.Defaults()
	}

	groups := Split(cfg.Routes)

	diskRouteFiles := make([]string, 0, len(groups.Disk))
	for _, e := range groups.Disk {
		diskRouteFiles = append(diskRouteFiles, pathutil.Resolve(configDir, diskPath(e.Target)))
	}

	otherLocalFiles := make([]string, 0, len(groups.Web))
	for _, e := range groups.Web {
		web := e.Target.(route.WebRoute)
		if !web.HasWatch() {
			continue
		}
		otherLocalFiles = append(otherLocalFiles, pathutil.Resolve(configDir, web.Watch))
	}

	files := make([]string, 0, len(diskRouteFiles)+len(otherLocalFiles))
	files = append(files, diskRouteFiles...)
	files = append(files, otherLocalFiles...)

	replace := fmt.Sprintf("//%s:%d", cfg.Host, cfg.Port)
	rewriteRules := make([]RewriteRule, 0, len(groups.Web))
	for _, e := range groups.Web {
		web := e.Target.(route.WebRoute)
		rewriteRules = append(rewriteRules, NewRewriteRule(web.Host, replace, cfg.LiteralHosts))
	}

	protocol := config.ProtocolHTTP
	if truthy(cfg.BS["https"]) {
		protocol = config.ProtocolHTTPS
	}

	startPath := cfg.StartPath

	return &Result{
		RouteGroups:     groups,
		WebRoutes:       groups.Web,
		DiskRoutes:      groups.Disk,
		DiskRouteFiles:  diskRouteFiles,
		OtherLocalFiles: otherLocalFiles,
		Files:           files,
		RewriteRules:    rewriteRules,
		Protocol:        protocol,
		SpandxURL:       fmt.Sprintf("%s//%s:%d%s", protocol, cfg.Host, cfg.Port, startPath),
		StartPath:       startPath,
		Verbose:         cfg.Verbose && !cfg.Silent,
		ConfigDir:       configDir,
	}
}

func diskPath(t route.Target) string {
	if d, ok := t.(route.DiskRoute); ok {
		return d.Path()
	}
	return ""
}

// truthy follows the loose truthiness of hand-written config values, so
// "https: 1" and "https: yes" both enable TLS.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}
