package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch calls onChange every time the config file at path is written or
// recreated. It returns once the watcher is running; the watcher lives for
// the rest of the process.
func Watch(path string, onChange func(fsnotify.Event)) error {
	if path == "" {
		path = DefaultFile()
	}

	fullPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	format, err := formatOf(fullPath)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(fullPath)
	v.SetConfigType(format)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fullPath, err)
	}

	v.OnConfigChange(onChange)
	v.WatchConfig()

	return nil
}
