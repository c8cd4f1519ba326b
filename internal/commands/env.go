package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/farthing-dev/farthing/internal/config"
	"github.com/farthing-dev/farthing/internal/ledger"
	"github.com/farthing-dev/farthing/internal/logger"
)

// dbFile is the bolt database name inside the data directory.
const dbFile = "farthing.db"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dir     string
	verbose bool
}

// dataDir resolves the data directory from the --dir flag, the FARTHING_DIR
// environment variable, or ~/.farthing, in that order.
func (o *rootOptions) dataDir() (string, error) {
	if o.dir != "" {
		return o.dir, nil
	}
	if dir := os.Getenv("FARTHING_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".farthing"), nil
}

// appEnv bundles the open resources a command works against.
type appEnv struct {
	dir   string
	cfg   *config.Config
	db    *ledger.DB
	store *ledger.Store
	log   zerolog.Logger
}

// open loads the config and ledger database from the data directory. The
// caller must Close the environment when done.
func (o *rootOptions) open() (*appEnv, error) {
	dir, err := o.dataDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s is not initialized, run \"farthing init\" first", dir)
	}
	if err != nil {
		return nil, err
	}

	level, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if o.verbose {
		level = zerolog.DebugLevel
	}
	log := logger.New(level)

	db, err := ledger.Open(filepath.Join(dir, dbFile))
	if err != nil {
		return nil, err
	}
	snap, err := db.Load()
	if err != nil {
		db.Close()
		return nil, err
	}

	return &appEnv{
		dir:   dir,
		cfg:   cfg,
		db:    db,
		store: ledger.NewStore(snap),
		log:   log,
	}, nil
}

// save persists the store's current state back to the database.
func (e *appEnv) save() error {
	return e.db.Save(e.store.Snapshot())
}

// Close releases the database handle.
func (e *appEnv) Close() error {
	return e.db.Close()
}

// ctx returns a context carrying the environment's logger.
func (e *appEnv) ctx() context.Context {
	return logger.WithContext(context.Background(), e.log)
}
