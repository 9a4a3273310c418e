package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/radar/pkg/palette"
)

// themesCommand creates the themes command, which lists every theme the
// effective configuration can resolve along with its colors.
func (c *CLI) themesCommand(opts *configOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Long: `List the built-in dark and light themes and any palettes defined in the
config file, with a color swatch for every role.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			resolver, err := cfg.Resolver()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			selected := make(map[string]bool, len(cfg.Themes))
			for _, name := range cfg.Themes {
				selected[strings.ToLower(name)] = true
			}
			for _, name := range resolver.Names() {
				theme, err := resolver.Resolve(name)
				if err != nil {
					return err
				}
				title := StyleTitle.Render(name)
				if selected[name] {
					title += " " + StyleDim.Render("(rendered)")
				}
				fmt.Fprintln(w, title)
				for _, role := range palette.Roles {
					hex := theme.Hex(role)
					fmt.Fprintf(w, "  %s %s %s\n", swatch(hex), styleKey.Render(string(role)), StyleValue.Render(hex))
				}
			}
			return nil
		},
	}
}
