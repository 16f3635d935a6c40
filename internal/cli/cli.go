// Package cli implements the resolvekit command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depstack/resolvekit/pkg/buildinfo"
	"github.com/depstack/resolvekit/pkg/cache"
	"github.com/depstack/resolvekit/pkg/errors"
	"github.com/depstack/resolvekit/pkg/repo"
	"github.com/depstack/resolvekit/pkg/resolver"
	"github.com/depstack/resolvekit/pkg/settings"

	// Registers the ibiblio resolver type.
	_ "github.com/depstack/resolvekit/pkg/resolver/ibiblio"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "resolvekit"

	// defaultCacheTTL is the default lifetime of cached repository probes.
	defaultCacheTTL = 15 * time.Minute
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Repository configuration, bound to persistent flags.
	resolverType string
	root         string
	pattern      string
	m2           bool
	noPoms       bool
	settingsFile string

	// Cache configuration.
	noCache   bool
	redisAddr string
	cacheTTL  time.Duration
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "resolvekit",
		Short:        "Resolvekit locates artifacts in Maven-style repositories",
		Long:         `Resolvekit is a pattern-driven artifact locator for Maven-style HTTP repositories. It resolves module revisions, probes for artifacts, downloads them, and enumerates repository contents, with support for both the legacy and the Maven2 repository layouts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.resolverType, "resolver", "ibiblio", "resolver type")
	pf.StringVar(&c.root, "root", "", "repository root URL (default pulled from settings)")
	pf.StringVar(&c.pattern, "pattern", "", "artifact pattern (default pulled from settings)")
	pf.BoolVar(&c.m2, "m2", false, "use the Maven2-compatible repository layout")
	pf.BoolVar(&c.noPoms, "no-poms", false, "disable descriptor (POM) lookups")
	pf.StringVar(&c.settingsFile, "settings", "", "TOML file with repository default variables")
	pf.BoolVar(&c.noCache, "no-cache", false, "disable the repository probe cache")
	pf.StringVar(&c.redisAddr, "redis", "", "redis address for a shared probe cache (host:port)")
	pf.DurationVar(&c.cacheTTL, "cache-ttl", defaultCacheTTL, "lifetime of cached repository probes")

	// Register all subcommands
	root.AddCommand(c.locateCommand())
	root.AddCommand(c.existsCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Resolver Factory
// =============================================================================

// Optional configuration surfaces a resolver type may implement. Config
// flags are applied only when the selected type supports them.
type (
	rootSetter    interface{ SetRoot(string) error }
	patternSetter interface{ SetPattern(string) error }
	m2Setter      interface{ SetM2Compatible(bool) }
	pomsSetter    interface{ SetUsePoms(bool) }
)

// newResolver builds the configured resolver with its store, cache, and
// fetch engine. The --m2 flag is applied before --root and --pattern so
// explicit values win over the Maven2 layout defaults.
func (c *CLI) newResolver(cmd *cobra.Command) (resolver.Resolver, error) {
	factory, ok := resolver.Lookup(c.resolverType)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown resolver type %q (available: %v)", c.resolverType, resolver.Types())
	}

	store := settings.New()
	if c.settingsFile != "" {
		store = settings.NewWithDefaultsFile(c.settingsFile)
	}

	probeCache, err := c.newCache(cmd)
	if err != nil {
		return nil, err
	}

	res := factory(resolver.Deps{
		Store:  store,
		Finder: repo.NewHTTPFinder(probeCache, c.cacheTTL, c.Logger),
		Logger: c.Logger,
	})

	if c.m2 {
		if s, ok := res.(m2Setter); ok {
			s.SetM2Compatible(true)
		}
	}
	if c.root != "" {
		s, ok := res.(rootSetter)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"resolver type %q does not accept --root", c.resolverType)
		}
		if err := s.SetRoot(c.root); err != nil {
			return nil, err
		}
	}
	if c.pattern != "" {
		s, ok := res.(patternSetter)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"resolver type %q does not accept --pattern", c.resolverType)
		}
		if err := s.SetPattern(c.pattern); err != nil {
			return nil, err
		}
	}
	if c.noPoms {
		if s, ok := res.(pomsSetter); ok {
			s.SetUsePoms(false)
		}
	}

	return res, nil
}

// newCache builds the probe cache backend: redis when --redis is set, the
// file cache by default, the null cache with --no-cache or when no cache
// directory is available.
func (c *CLI) newCache(cmd *cobra.Command) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if c.redisAddr != "" {
		return cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:   c.redisAddr,
			Prefix: appName,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/resolvekit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
