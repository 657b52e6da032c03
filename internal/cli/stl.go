package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/kernel/sdfx"
	"github.com/chazu/tenon/pkg/scad"
)

// stlOpts holds the command-line flags for the stl command.
type stlOpts struct {
	output string // output file path; only valid for a single script
	config string // explicit config file path
	cells  int    // marching cubes resolution override
	parts  bool   // write one mesh per part
}

// newSTLCmd creates the stl command, which evaluates scripts and
// tessellates them into binary STL meshes via the SDF kernel.
func newSTLCmd() *cobra.Command {
	var opts stlOpts

	cmd := &cobra.Command{
		Use:   "stl [script]...",
		Short: "Evaluate scripts and tessellate them into STL meshes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output is only valid with a single script")
			}
			return runBatch(cmd.Context(), args, func(ctx context.Context, script string) error {
				return runSTLOne(ctx, script, &opts)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single script only)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default: tenon.toml next to the script)")
	cmd.Flags().IntVar(&opts.cells, "cells", 0, "marching cubes resolution (0 = config or kernel default)")
	cmd.Flags().BoolVar(&opts.parts, "parts", false, "write one mesh per part")

	return cmd
}

func runSTLOne(ctx context.Context, script string, opts *stlOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts.config, script)
	if err != nil {
		return err
	}
	cells := opts.cells
	if cells == 0 {
		cells = cfg.Mesh.Cells
	}

	result, err := evaluateScript(ctx, script, cfg)
	if err != nil {
		return err
	}

	k := sdfx.New()

	if opts.parts {
		base := opts.output
		if base == "" {
			base = replaceExt(script, ".stl")
		}
		for _, pm := range result.Parts {
			out := partFileName(base, pm.Part.Name)
			if err := meshToFile(k, pm.Model, cells, pm.Part.Name, out); err != nil {
				return err
			}
			logger.Info("wrote part mesh", "part", pm.Part.Name, "path", out)
		}
		prog.done(fmt.Sprintf("Tessellated %s into %d part mesh(es)", script, len(result.Parts)))
		return nil
	}

	out := opts.output
	if out == "" {
		out = replaceExt(script, ".stl")
	}
	if err := meshToFile(k, result.Model, cells, "", out); err != nil {
		return err
	}
	logger.Info("wrote mesh", "path", out)
	prog.done(fmt.Sprintf("Tessellated %s", script))
	return nil
}

// meshToFile lowers a model document onto k, tessellates the result and
// writes it as binary STL.
func meshToFile(k kernel.Kernel, doc *scad.LazyUnion, cells int, part, path string) error {
	solid, err := kernel.EvaluateDocument(doc, k)
	if err != nil {
		return fmt.Errorf("lower %s: %w", path, err)
	}
	if solid == nil {
		return fmt.Errorf("%s: document contains no geometry", path)
	}

	mesh, err := k.ToMesh(solid, cells)
	if err != nil {
		return fmt.Errorf("tessellate %s: %w", path, err)
	}
	mesh.PartName = part

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := kernel.WriteSTL(f, mesh); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
