package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/tenon/pkg/engine"
)

// newAnchorsCmd creates the anchors command, which lists every anchor a
// script's design exposes. Useful when writing placement calls.
func newAnchorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anchors [script]",
		Short: "List the anchors a script's design exposes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnchors(cmd.Context(), args[0])
		},
	}
}

func runAnchors(ctx context.Context, script string) error {
	logger := loggerFromContext(ctx)

	source, err := os.ReadFile(script)
	if err != nil {
		return fmt.Errorf("read %s: %w", script, err)
	}

	design, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", script, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Error("eval error", "path", script, "error", e.Error())
		}
		return fmt.Errorf("evaluate %s: %d error(s)", script, len(evalErrs))
	}
	if design.Root == nil {
		return fmt.Errorf("%w: %s", errNoDesign, script)
	}

	for _, name := range design.Root.AnchorNames() {
		fmt.Println(name)
	}
	return nil
}
