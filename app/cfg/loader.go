package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./issuecomb.db" description:"Path to the sqlite database file"`

	// Application configuration
	ProjectsDir      string `long:"projects-dir" env:"PROJECTS_DIR" default:"./projects" description:"Directory containing project configuration files"`
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount      int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for snapshot refreshes"`
	SnapshotInterval int    `long:"snapshot-interval" env:"SNAPSHOT_INTERVAL" default:"3600" description:"Snapshot refresh interval in seconds"`
	ResultCacheTTL   int    `long:"result-cache-ttl" env:"RESULT_CACHE_TTL" default:"300" description:"In-memory result cache TTL in seconds"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for marking endpoints (optional)"`

	// Platform credentials
	GitHubToken      string `long:"github-token" env:"GITHUB_TOKEN" description:"GitHub API token (optional, raises rate limits)"`
	PhabricatorToken string `long:"phabricator-token" env:"PHABRICATOR_TOKEN" description:"Phabricator Conduit API token"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:           raw.DBPath,
		ProjectsDir:      raw.ProjectsDir,
		Port:             raw.Port,
		WorkerCount:      raw.WorkerCount,
		SnapshotInterval: raw.SnapshotInterval,
		ResultCacheTTL:   raw.ResultCacheTTL,
		APIAccessKey:     raw.APIAccessKey,
		GitHubToken:      raw.GitHubToken,
		PhabricatorToken: raw.PhabricatorToken,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
