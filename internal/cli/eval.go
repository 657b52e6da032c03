package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/chazu/tenon/pkg/core"
	"github.com/chazu/tenon/pkg/engine"
	"github.com/chazu/tenon/pkg/linear"
	"github.com/chazu/tenon/pkg/render"
)

// errNoDesign reports a script that evaluated cleanly but never called
// design.
var errNoDesign = errors.New("script produced no design")

// evaluateScript runs the full pipeline for one script: read, evaluate,
// render. Config segment defaults apply beneath the script's own design
// attributes. Each run gets a job id so batch logs stay attributable.
func evaluateScript(ctx context.Context, path string, cfg Config) (*render.Result, error) {
	logger := loggerFromContext(ctx)
	job := uuid.NewString()
	logger.Debug("evaluating script", "path", path, "job", job)

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	design, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Error("eval error", "path", path, "job", job, "error", e.Error())
		}
		return nil, fmt.Errorf("evaluate %s: %d error(s), first: %s", path, len(evalErrs), evalErrs[0].Error())
	}
	if design.Root == nil {
		return nil, fmt.Errorf("%w: %s", errNoDesign, path)
	}

	attrs := rootAttrs(cfg, design.Attrs)
	result, err := render.RenderWith(design.Root, linear.Identity, attrs)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	logger.Debug("render complete", "path", path, "job", job,
		"groups", len(result.Groups), "parts", len(result.Parts))
	return result, nil
}

// rootAttrs layers the script's design attributes over the config segment
// defaults.
func rootAttrs(cfg Config, designAttrs *core.Attributes) *core.Attributes {
	base := core.EmptyAttrs
	if cfg.Segments.Fn != 0 {
		base = base.WithFn(cfg.Segments.Fn)
	}
	if cfg.Segments.Fa != 0 {
		base = base.WithFa(cfg.Segments.Fa)
	}
	if cfg.Segments.Fs != 0 {
		base = base.WithFs(cfg.Segments.Fs)
	}
	return base.Merge(designAttrs)
}
