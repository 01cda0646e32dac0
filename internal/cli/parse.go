package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/circmark/circmark/pkg/circuit"
	"github.com/circmark/circmark/pkg/pipeline"
)

// parseCommand creates the parse command, which stops after the first
// pipeline stage and prints the topology tree.
func (c *CLI) parseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse [source]",
		Short: "Parse circmark notation and print the topology tree",
		Long: `Parse circmark notation and print the topology tree as JSON.

The source can be given inline, as a file path, or as "-" for stdin.
This is mainly a debugging aid: it shows how the notation was read
without computing any geometry.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (c *CLI) runParse(ctx context.Context, arg, output string) error {
	source, _, err := readSource(arg)
	if err != nil {
		return err
	}

	doc, err := pipeline.Parse(ctx, source)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	data = append(data, '\n')

	if output != "" {
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
	} else {
		os.Stdout.Write(data)
	}

	printStats(circuit.CountElements(doc), 0, false)
	return nil
}
