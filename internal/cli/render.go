package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/circmark/circmark/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string // output file path (or base path for multiple formats)
	formats   []string
	themePath string // TOML theme file
	noCache   bool
	cacheDir  string // override the cache directory
	refresh   bool   // bypass the cache and recompute
}

// renderCommand creates the render command.
//
// The source argument is resolved in order: "-" reads notation from stdin,
// an existing file path reads the file, and anything else is taken as
// notation directly, so all three of these work:
//
//	circmark render '(R1+R2||R3)'
//	circmark render divider.cm
//	echo '|V1-R1|O' | circmark render -
//
// With -o - the artifact goes to stdout instead of a file, so the command
// composes in a pipe: circmark render divider.cm -o - > divider.svg.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render circmark notation to a schematic",
		Long: `Render circmark notation to a schematic diagram.

The source can be given inline, as a file path, or as "-" for stdin.
Output formats: svg (schematic), json (positioned geometry), dot
(topology graph), png (rasterized topology graph). With -o - the
artifact is written to stdout (single format only).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, dot, png (comma-separated)")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "TOML theme file for SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "override the cache directory")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and recompute")

	return cmd
}

// runRender resolves the input, executes the pipeline, and writes artifacts.
func (c *CLI) runRender(ctx context.Context, arg string, opts *renderOpts) error {
	source, input, err := readSource(arg)
	if err != nil {
		return err
	}

	theme, err := loadTheme(opts.themePath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache, opts.cacheDir)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		Source:  source,
		Formats: opts.formats,
		Refresh: opts.refresh,
		Theme:   theme,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}

	if err := writeArtifacts(os.Stdout, result, opts, input); err != nil {
		return err
	}

	// Status lines would corrupt a piped artifact.
	if opts.output != "-" {
		printSuccess("Rendered %s", source)
		printStats(result.Stats.ElementCount, result.Stats.WireCount,
			result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	}
	return nil
}

// writeArtifacts delivers the rendered outputs: to w when the output flag
// is "-" (one format only), otherwise to per-format files derived from the
// output and input paths.
func writeArtifacts(w io.Writer, result *pipeline.Result, opts *renderOpts, input string) error {
	if opts.output == "-" {
		if len(opts.formats) > 1 {
			return fmt.Errorf("writing to stdout supports a single format, got %d", len(opts.formats))
		}
		if _, err := w.Write(result.Artifacts[opts.formats[0]]); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
