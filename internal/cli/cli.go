// Package cli implements the circmark command-line interface.
//
// This package provides commands for parsing circmark notation, rendering
// schematics to various formats, serving the HTTP API, and managing the
// local artifact cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Parse notation and generate SVG, JSON, DOT, or PNG output
//   - parse: Print the topology tree as JSON
//   - serve: Run the HTTP API server
//   - cache: Manage the local render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// attached to the CLI instance and passed into the pipeline runner.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/circmark/circmark/pkg/buildinfo"
	"github.com/circmark/circmark/pkg/cache"
	"github.com/circmark/circmark/pkg/pipeline"
	"github.com/circmark/circmark/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "circmark"

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "circmark",
		Short:        "Circmark renders compact circuit notation as schematics",
		Long:         `Circmark is a CLI tool for turning compact textual circuit notation like (R1+R2||R3) into two-dimensional schematic diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool, cacheDirFlag string) (*pipeline.Runner, error) {
	cc, err := newCache(noCache, cacheDirFlag)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

func newCache(noCache bool, dirFlag string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := dirFlag
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			printWarning("Cache disabled: %v", err)
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/circmark/).
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

// =============================================================================
// Input Handling
// =============================================================================

// readSource resolves the source argument: "-" reads stdin, an existing file
// path reads the file, and anything else is taken as notation directly.
// The second return value is the input file path, or "" for literal input.
func readSource(arg string) (string, string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), "", nil
	}
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", "", fmt.Errorf("read %s: %w", arg, err)
		}
		return strings.TrimSpace(string(data)), arg, nil
	}
	return arg, "", nil
}

// loadTheme loads a theme file if path is non-empty.
func loadTheme(path string) (*render.Theme, error) {
	if path == "" {
		return nil, nil
	}
	t, err := render.LoadTheme(path)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input; a literal notation
// input falls back to "circuit".
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "circuit"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
