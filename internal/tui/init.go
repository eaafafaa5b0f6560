package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/javiermolinar/resched/internal/config"
	"github.com/javiermolinar/resched/internal/db"
	"github.com/javiermolinar/resched/internal/demo"
	"github.com/javiermolinar/resched/internal/event"
)

// demoLatency makes the generated provider behave like a remote one so range
// changes overtake each other.
const demoLatency = 300 * time.Millisecond

// openProvider returns the events source for cfg: the demo generator or the
// SQLite store. closeFn releases it.
func openProvider(cfg *config.Config) (p event.Provider, closeFn func() error, err error) {
	if cfg.UI.Demo {
		return &demo.Provider{MaxLatency: demoLatency}, func() error { return nil }, nil
	}
	repo, err := openRepo(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, repo.Close, nil
}

func openRepo(dbPath string) (*db.SQLite, error) {
	repo, err := db.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}

// ensureConfig writes cfg to path on first run. It reports whether a file
// was created.
func ensureConfig(cfg *config.Config, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	missing, err := pathMissing(path)
	if err != nil {
		return false, fmt.Errorf("checking config path: %w", err)
	}
	if !missing {
		return false, nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return false, fmt.Errorf("saving config: %w", err)
	}
	return true, nil
}

func pathMissing(path string) (bool, error) {
	if path == "" {
		return true, nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, err
}
