package cli

import (
	"log/slog"
	"os"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/appstate"
	"github.com/SeamusWaldron/cubelet/internal/config"
	"github.com/SeamusWaldron/cubelet/internal/logging"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

// loadConfig reads the config file and applies global flag overrides.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// newLogger returns a stderr logger at the configured level.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(level, os.Stderr), nil
}

// openDB opens and migrates the journal database.
func openDB(cfg config.Config) (*storage.DB, error) {
	path, err := cfg.DBPath()
	if err != nil {
		return nil, err
	}
	return storage.OpenAndMigrate(path)
}

// newEngine builds an engine from config. Extra options win.
func newEngine(cfg config.Config, logger *slog.Logger, extra ...cubelet.Option) (*cubelet.Engine, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, cubelet.WithLogger(logger))
	opts = append(opts, extra...)
	return cubelet.New(opts...), nil
}

// journalCommits records every commit of engine in j.
func journalCommits(engine *cubelet.Engine, j *storage.Journal, logger *slog.Logger) {
	engine.OnCommit(func(c cubelet.Commit) {
		if err := j.Record(c.Seq, c.At, c.Turn); err != nil {
			logger.Error("journal write failed", "seq", c.Seq, "error", err)
		}
	})
}

// openAppState opens the state file. Failures are logged and yield nil;
// the state file is a convenience and never blocks a command.
func openAppState(logger *slog.Logger) *appstate.StateFile {
	sf, err := appstate.OpenDefault()
	if err != nil {
		logger.Warn("state file unavailable", "error", err)
		return nil
	}
	return sf
}

// rememberSession records id as the last journaled session.
func rememberSession(id string, logger *slog.Logger) {
	sf := openAppState(logger)
	if sf == nil {
		return
	}
	if err := sf.SetLastSession(id); err != nil {
		logger.Warn("failed to save last session", "error", err)
	}
}
