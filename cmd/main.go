package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/angeloszaimis/spandx/config"
	"github.com/angeloszaimis/spandx/internal/state"
	"github.com/angeloszaimis/spandx/pkg/logger"
)

type options struct {
	configPath string
	watch      bool
	print      bool
	logFormat  string
	addSource  bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		slog.Error("invalid arguments", slog.Any("err", err))
		os.Exit(2)
	}

	store := state.NewStore()

	snap, err := store.FromFile(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := newLogger(opts, snap)
	report(log, snap)

	if opts.print {
		if err := printSnapshot(os.Stdout, snap); err != nil {
			log.Error("failed to print config", slog.Any("err", err))
			os.Exit(1)
		}
	}

	if !opts.watch {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err = store.Watch(opts.configPath, func(snap *state.Snapshot, err error) {
		if err != nil {
			log.Error("failed to reload config, keeping previous", slog.Any("err", err))
			return
		}
		log.Info("config reloaded")
		report(log, snap)
	})
	if err != nil {
		log.Error("failed to watch config", slog.Any("err", err))
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info("Shutting down...")
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("spandx", pflag.ContinueOnError)
	fs.StringVarP(&opts.configPath, "config", "c", config.DefaultFile(), "path to the spandx config file (.yaml, .yml or .json)")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "reload the config file when it changes")
	fs.BoolVar(&opts.print, "print", true, "print the processed config as JSON")
	fs.StringVar(&opts.logFormat, "log-format", logger.FormatText, "log format: text or json")
	fs.BoolVar(&opts.addSource, "add-source", false, "include source locations in log records")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

func newLogger(opts options, snap *state.Snapshot) *slog.Logger {
	lvl := logger.Level(snap.Derived.Verbose, snap.Config.Silent)
	return logger.New(lvl, opts.addSource, opts.logFormat)
}

func report(log *slog.Logger, snap *state.Snapshot) {
	derived := snap.Derived

	log.Info("spandx configured",
		slog.String("url", derived.SpandxURL),
		slog.String("config_dir", derived.ConfigDir),
		slog.Int("disk_routes", len(derived.DiskRoutes)),
		slog.Int("web_routes", len(derived.WebRoutes)),
		slog.Int("watched_files", len(derived.Files)))

	for _, file := range derived.Files {
		log.Debug("watching", slog.String("path", file))
	}

	for _, rule := range derived.RewriteRules {
		if !rule.Valid() {
			log.Warn("web route has no usable host, its links will not be rewritten",
				slog.String("host", rule.Host))
			continue
		}
		log.Debug("rewriting",
			slog.String("match", rule.Match.String()),
			slog.String("replace", rule.Replace))
	}
}

func printSnapshot(w io.Writer, snap *state.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}
