package config

import (
	"path/filepath"
	"runtime"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/angeloszaimis/spandx/internal/route"
)

const (
	ProtocolHTTP  = "http:"
	ProtocolHTTPS = "https:"
)

const (
	DefaultHost     = "localhost"
	DefaultPort     = 1337
	DefaultFileName = "spandx.config.yaml"
)

// Config is the user-facing spandx configuration. Zero-valued fields are
// treated as unset when merged over the defaults.
type Config struct {
	Protocol  string `mapstructure:"protocol" json:"protocol"`
	Host      string `mapstructure:"host" json:"host"`
	Port      int    `mapstructure:"port" json:"port"`
	Verbose   bool   `mapstructure:"verbose" json:"verbose"`
	Silent    bool   `mapstructure:"silent" json:"silent"`
	StartPath string `mapstructure:"startPath" json:"startPath,omitempty"`

	// LiteralHosts makes rewrite rules match route hosts literally instead
	// of as regular expressions.
	LiteralHosts bool `mapstructure:"literalHosts" json:"literalHosts,omitempty"`

	Routes route.Table `mapstructure:"-" json:"routes"`

	// BS holds options for the live-reload server. Only "https" is read here.
	BS map[string]any `mapstructure:"-" json:"bs"`
}

// Defaults returns a fresh copy of the built-in configuration: a single
// route serving the splash page on http://localhost:1337.
func Defaults() *Config {
	return &Config{
		Protocol: ProtocolHTTP,
		Host:     DefaultHost,
		Port:     DefaultPort,
		Verbose:  false,
		Silent:   false,
		Routes:   route.NewTable(route.Disk("/", SplashDir())),
		BS:       map[string]any{},
	}
}

// PackageDir is the directory holding this package's sources. It is the
// config directory used when none is given.
func PackageDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(file)
}

// SplashDir is the directory served by the default route.
func SplashDir() string {
	return filepath.Join(PackageDir(), "splash")
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Protocol,
			validation.Required,
			validation.In(ProtocolHTTP, ProtocolHTTPS),
		),
		validation.Field(&c.Host,
			validation.Required,
			is.Host,
		),
		validation.Field(&c.Port,
			validation.Required,
			validation.Min(1),
			validation.Max(65535),
		),
		validation.Field(&c.StartPath,
			validation.By(validateStartPath),
		),
	)
}

func validateStartPath(value interface{}) error {
	startPath, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if startPath != "" && !strings.HasPrefix(startPath, "/") {
		return validation.NewError("validation_invalid_start_path", "must begin with /")
	}

	return nil
}
