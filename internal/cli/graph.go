package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string // output file path; only valid for a single script
	config string // explicit config file path
	format string // "dot" or "svg"
}

// newGraphCmd creates the graph command, which exports the composition
// graph a render produced.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [script]...",
		Short: "Export the composition graph as DOT or SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output is only valid with a single script")
			}
			opts.format = strings.ToLower(opts.format)
			if opts.format != "dot" && opts.format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return runBatch(cmd.Context(), args, func(ctx context.Context, script string) error {
				return runGraphOne(ctx, script, &opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single script only)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: tenon.toml next to the script)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot (default), svg")

	return cmd
}

func runGraphOne(ctx context.Context, script string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config, script)
	if err != nil {
		return err
	}

	result, err := evaluateScript(ctx, script, cfg)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = replaceExt(script, "."+opts.format)
	}

	var data []byte
	switch opts.format {
	case "svg":
		data, err = result.Graph.RenderSVG(ctx)
		if err != nil {
			return fmt.Errorf("render graph %s: %w", script, err)
		}
	default:
		data = []byte(result.Graph.ToDOT())
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("wrote graph", "path", out, "nodes", result.Graph.Len())
	return nil
}
