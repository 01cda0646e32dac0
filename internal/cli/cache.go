package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached schematics and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			counts, failed, err := clearCacheDir(dir)
			if err != nil {
				return err
			}
			if failed > 0 {
				printError("Failed to remove %d entries", failed)
			}

			total := 0
			for _, n := range counts {
				total += n
			}
			printSuccess("Cleared %d cached entries", total)
			printDetail("%d schematics, %d artifacts", counts["schematic"], counts["artifact"])
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// clearCacheDir removes every cache entry under dir, then the emptied class
// subdirectories. It returns removal counts keyed by entry class (the
// top-level subdirectory: "schematic", "artifact") and the number of
// entries that could not be removed.
func clearCacheDir(dir string) (map[string]int, int, error) {
	counts := map[string]int{}
	failed := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir || info.IsDir() {
			return nil
		}
		if os.Remove(path) != nil {
			failed++
			return nil
		}
		rel, _ := filepath.Rel(dir, path)
		class := "misc"
		if parts := strings.SplitN(rel, string(filepath.Separator), 2); len(parts) == 2 {
			class = parts[0]
		}
		counts[class]++
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	// Remove the now-empty class subdirectories.
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && path != dir && info.IsDir() {
			os.Remove(path)
		}
		return nil
	})

	return counts, failed, nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
