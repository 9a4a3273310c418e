package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/matzehuels/radar/pkg/config"
	"github.com/matzehuels/radar/pkg/pipeline"
)

// runRender executes the pipeline for one attribute file and reports the
// written images.
func (c *CLI) runRender(ctx context.Context, input string, cfg config.Config) error {
	c.Logger.Debug("effective config",
		"height", cfg.Height,
		"themes", cfg.Themes,
		"seed", cfg.Seed,
		"clear_background", cfg.ClearBackground)

	prog := newProgress(c.Logger)
	result, err := pipeline.NewRunner(c.Logger).Execute(ctx, input, cfg)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d themes", len(result.Outputs)))

	printSuccess(c.out, "Personality matrix complete")
	for _, out := range result.Outputs {
		printFile(c.out, out.Path)
	}
	for _, a := range result.Attributes {
		printKeyValue(c.out, a.Name, strconv.Itoa(a.Value))
	}
	printStats(c.out, result.Attributes.Len(), len(result.Outputs), cfg.Seed)
	printNextStep(c.out, "Customize", appName+" config > "+appName+".toml")
	return nil
}
