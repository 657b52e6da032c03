package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/tenon/pkg/scad"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path; only valid for a single script
	config string // explicit config file path
	parts  bool   // additionally write one document per part
}

// newRenderCmd creates the render command, which evaluates scripts and
// writes their model documents. Multiple scripts are processed
// independently; one failing script does not stop the rest.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [script]...",
		Short: "Evaluate scripts and write their model documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output is only valid with a single script")
			}
			return runBatch(cmd.Context(), args, func(ctx context.Context, script string) error {
				return runRenderOne(ctx, script, &opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single script only)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: tenon.toml next to the script)")
	cmd.Flags().BoolVar(&opts.parts, "parts", false, "also write one document per part")

	return cmd
}

// runBatch runs fn for every script, isolating failures per script.
func runBatch(ctx context.Context, scripts []string, fn func(context.Context, string) error) error {
	logger := loggerFromContext(ctx)
	failed := 0
	for _, script := range scripts {
		if err := fn(ctx, script); err != nil {
			logger.Error("script failed", "path", script, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d script(s) failed", failed, len(scripts))
	}
	return nil
}

func runRenderOne(ctx context.Context, script string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

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
		out = replaceExt(script, ".scad")
	}
	if err := writeDocument(out, result.Model); err != nil {
		return err
	}
	logger.Info("wrote model", "path", out)

	if opts.parts {
		for _, pm := range result.Parts {
			partOut := partFileName(out, pm.Part.Name)
			if err := writeDocument(partOut, pm.Model); err != nil {
				return err
			}
			logger.Info("wrote part model", "part", pm.Part.Name, "path", partOut)
		}
	}

	prog.done(fmt.Sprintf("Rendered %s (%d group(s))", script, len(result.Groups)))
	return nil
}

// writeDocument writes a model document to path.
func writeDocument(path string, doc *scad.LazyUnion) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := scad.Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// replaceExt swaps the extension of path for ext.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// partFileName derives the per-part output path from the combined output
// path, e.g. model.scad -> model_lid.scad.
func partFileName(out, part string) string {
	ext := filepath.Ext(out)
	return strings.TrimSuffix(out, ext) + "_" + part + ext
}
