package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/angeloszaimis/spandx/internal/route"
)

// EnvPrefix prefixes the environment variables that override file values,
// e.g. SPANDX_PORT.
const EnvPrefix = "spandx"

var envKeys = []string{"protocol", "host", "port", "verbose", "silent", "startPath", "literalHosts"}

// sections are decoded outside viper, which lower-cases keys and does not
// keep map order.
type sections struct {
	Routes route.Table    `yaml:"routes" json:"routes"`
	BS     map[string]any `yaml:"bs" json:"bs"`
}

// DefaultFile returns the config file looked up when none is given:
// spandx.config.yaml in the working directory.
func DefaultFile() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(wd, DefaultFileName)
}

// LoadFile reads the config file at path and returns the partial
// configuration it declares together with the absolute directory holding
// the file. An empty path means DefaultFile(). The result is not merged
// with the defaults.
func LoadFile(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultFile()
	}

	fullPath, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}

	format, err := formatOf(fullPath)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, "", err
	}

	cfg, err := decode(data, format)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", fullPath, err)
	}

	slog.Debug("loaded config file", slog.String("file", fullPath))

	return cfg, filepath.Dir(fullPath), nil
}

func decode(data []byte, format string) (*Config, error) {
	v := newViper(format)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	var sec sections
	var err error
	if format == "json" {
		err = json.Unmarshal(data, &sec)
	} else {
		err = yaml.Unmarshal(data, &sec)
	}
	if err != nil {
		return nil, err
	}

	cfg.Routes = sec.Routes
	cfg.BS = sec.BS

	return &cfg, nil
}

func newViper(format string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(format)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key)
	}
	return v
}

func formatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
