// Package shellconfig loads configuration for the lseqsh REPL: a site id
// and a snapshot file path, read from a layered hujson (JSON-with-comments)
// config file the same way the teacher project layers its own config.
package shellconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds lseqsh's configuration options.
type Config struct {
	Site     uint32 `json:"site,omitempty"`
	Snapshot string `json:"snapshot,omitempty"`
}

// Sources tracks which config files were loaded, for diagnostics.
type Sources struct {
	Global  string
	Project string
}

// FileName is the default project config file name.
const FileName = ".lseqsh.json"

// Config errors.
var (
	ErrFileNotFound = errors.New("shellconfig: config file not found")
	ErrFileRead     = errors.New("shellconfig: cannot read config file")
	ErrInvalid      = errors.New("shellconfig: invalid config file")
	ErrSnapshotReq  = errors.New("shellconfig: snapshot path cannot be empty")
)

// Default returns the built-in defaults: site 1, snapshot in the current
// directory.
func Default() Config {
	return Config{Site: 1, Snapshot: "lseq-snapshot.json"}
}

// globalPath returns $XDG_CONFIG_HOME/lseqsh/config.json, falling back to
// ~/.config/lseqsh/config.json. Returns "" if neither can be determined.
func globalPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "lseqsh", "config.json")
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lseqsh", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "lseqsh", "config.json")
}

// Load loads configuration with the following precedence (highest wins):
//  1. Default
//  2. Global config (~/.config/lseqsh/config.json)
//  3. Project config file in workDir (.lseqsh.json), or an explicit
//     configPath if non-empty
//  4. cliOverrides, applied field-by-field where the caller sets hasX
func Load(workDir, configPath string, cliOverrides Config, hasSite, hasSnapshot bool, env []string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, gPath, err := loadOptional(globalPath(env))
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = gPath
	cfg = merge(cfg, globalCfg)

	projectCfg, pPath, err := loadProject(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = pPath
	cfg = merge(cfg, projectCfg)

	if hasSite {
		cfg.Site = cliOverrides.Site
	}

	if hasSnapshot {
		cfg.Snapshot = cliOverrides.Snapshot
	}

	if cfg.Snapshot == "" {
		return Config{}, Sources{}, ErrSnapshotReq
	}

	return cfg, sources, nil
}

func loadOptional(path string) (Config, string, error) {
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProject(workDir, configPath string) (Config, string, error) {
	mustExist := configPath != ""

	path := configPath
	if path == "" {
		path = filepath.Join(workDir, FileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	if mustExist {
		if _, statErr := os.Stat(path); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrFileRead, path)
		}

		return Config{}, false, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", ErrInvalid, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSON: %w", ErrInvalid, path, err)
	}

	return cfg, true, nil
}

func merge(base, overlay Config) Config {
	if overlay.Site != 0 {
		base.Site = overlay.Site
	}

	if overlay.Snapshot != "" {
		base.Snapshot = overlay.Snapshot
	}

	return base
}
