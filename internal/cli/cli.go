// Package cli implements the menusolver command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/menusolver/pkg/buildinfo"
	"github.com/matzehuels/menusolver/pkg/cache"
	pkgio "github.com/matzehuels/menusolver/pkg/io"
	"github.com/matzehuels/menusolver/pkg/menu"
	"github.com/matzehuels/menusolver/pkg/solver"
	"github.com/matzehuels/menusolver/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "menusolver"

	// defaultAddr is the listen address of the serve command.
	defaultAddr = "127.0.0.1:7380"
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

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Menusolver resolves menu contributions into a menu tree",
		Long:         `Menusolver merges flat menu item declarations from any number of contribution files into one ordered, nested menu tree, honouring before/after constraints between siblings.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/menusolver/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Store Factory
// =============================================================================

// newStore loads every manifest in files as its own contribution batch.
// newStore loads every manifest into a fresh store. Each inspect function sees
// the decoded items of a file before they are added.
func newStore(ctx context.Context, files []string, policy solver.Policy, inspect ...func(path string, items []*menu.Declaration)) (*store.Store, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	st := store.New(store.WithSolver(solver.New(solver.WithPolicy(policy), solver.WithLogger(logger))))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := pkgio.ImportManifest(path)
		if err != nil {
			return nil, err
		}
		for _, fn := range inspect {
			fn(path, items)
		}
		h := st.Add(items...)
		logger.Debug("loaded manifest", "file", path, "items", h.Len(), "handle", h.ID())
	}

	prog.done(summarize(st))
	return st, nil
}

func newCache(logger *log.Logger, noCache bool) cache.Cache {
	if noCache {
		return cache.Nop
	}
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("artifact cache disabled", "err", err)
		return cache.Nop
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("artifact cache disabled", "err", err)
		return cache.Nop
	}
	logger.Debug("artifact cache", "dir", c.Dir())
	return c
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/menusolver/).
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

// policyFlag resolves the effective policy: the flag when set, the config
// file otherwise.
func (c *CLI) policyFlag(cmd *cobra.Command, flag string) (solver.Policy, error) {
	if cmd.Flags().Changed("policy") {
		return solver.ParsePolicy(flag)
	}
	return solver.ParsePolicy(c.config.Policy)
}
