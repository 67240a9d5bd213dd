package state

import (
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/angeloszaimis/spandx/config"
	"github.com/angeloszaimis/spandx/internal/processor"
)

// Snapshot is one published configuration and the data derived from it.
// It is never modified after publication.
type Snapshot struct {
	Config  *config.Config    `json:"config"`
	Derived *processor.Result `json:"derived"`
}

// LoadError reports a config file that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("tried to open spandx config file %s but couldn't find it, or couldn't access it: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store publishes snapshots. The zero value is ready to use and holds no
// snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Create merges incoming over the built-in defaults, processes the result
// against configDir and publishes it. An empty configDir means the config
// package directory.
func (s *Store) Create(incoming *config.Config, configDir string) *Snapshot {
	if configDir == "" {
		configDir = config.PackageDir()
	}

	snap := build(config.Merge(incoming, config.Defaults()), configDir)
	s.current.Store(snap)
	return snap
}

// FromFile loads the config file at path, or config.DefaultFile() when path
// is empty, and publishes it with the file's directory as config directory.
// On error nothing is published.
func (s *Store) FromFile(path string) (*Snapshot, error) {
	if path == "" {
		path = config.DefaultFile()
	}

	incoming, dir, err := config.LoadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	merged := config.Merge(incoming, config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	snap := build(merged, dir)
	s.current.Store(snap)
	return snap, nil
}

// Get returns the most recently published snapshot, or nil.
func (s *Store) Get() *Snapshot {
	return s.current.Load()
}

// Watch reloads the config file at path whenever it changes and reports
// each attempt to onReload. A failed reload keeps the previous snapshot.
func (s *Store) Watch(path string, onReload func(*Snapshot, error)) error {
	if path == "" {
		path = config.DefaultFile()
	}

	return config.Watch(path, func(fsnotify.Event) {
		snap, err := s.FromFile(path)
		if onReload != nil {
			onReload(snap, err)
		}
	})
}

func build(cfg *config.Config, configDir string) *Snapshot {
	return &Snapshot{
		Config:  cfg,
		Derived: processor.Process(cfg, configDir),
	}
}
