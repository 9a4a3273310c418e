package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// configuration as TOML. The output is a valid config file.
func (c *CLI) configCommand(opts *configOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration that a render would use, after applying the config
file and flags, in the same TOML format the --config flag reads.`,
		Example: `  radar config > radar.toml
  radar config -c radar.toml --height 2000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
