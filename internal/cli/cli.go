// Package cli implements the radar command-line interface.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radar/pkg/buildinfo"
	"github.com/matzehuels/radar/pkg/config"
	"github.com/matzehuels/radar/pkg/fonts"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "radar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrUsage is returned when the command line is incomplete. The usage text
// has already been printed when it is returned.
var ErrUsage = errors.New("usage error")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	out    io.Writer
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects usage, status lines and command output, which go to
// stdout by default. Logs keep the writer passed to [New].
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself renders an attribute file.
func (c *CLI) RootCommand() *cobra.Command {
	var opts configOpts

	root := &cobra.Command{
		Use:   appName + " <data.csv>",
		Short: "Radar renders personality attributes as radial charts",
		Long: `Radar reads named personality attributes from a comma-separated file and
renders them as a radial chart, once per theme (dark and light by default).

Each data line is "name,value". Values are plotted on a 1-20 scale; larger
values are clamped and negative values are filled in at random.`,
		Example: `  radar host.csv                 # writes host.png and host-light.png
  radar host.csv --height 2000   # smaller images
  radar host.csv --seed 7        # reproducible random fill`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return ErrUsage
			}
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], cfg)
		},
	}

	root.SetOut(c.out)
	root.SetVersionTemplate(buildinfo.Template())
	opts.register(root)

	root.AddCommand(c.themesCommand(&opts))
	root.AddCommand(c.configCommand(&opts))
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Options Helpers
// =============================================================================

// configOpts holds the flags that layer over the config file. They are
// persistent so that the themes and config subcommands see the same values.
type configOpts struct {
	file            string
	height          int
	seed            uint64
	clearBackground bool
	themes          string
	font            string
}

func (o *configOpts) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.file, "config", "c", "", "TOML config file")
	f.IntVar(&o.height, "height", 0, "image height in pixels (width is 1.4x)")
	f.Uint64Var(&o.seed, "seed", 0, "random seed for unknown values (0 = random)")
	f.BoolVar(&o.clearBackground, "clear-background", false, "leave the background transparent")
	f.StringVar(&o.themes, "themes", "", "themes to render (comma-separated, default dark,light)")
	f.StringVar(&o.font, "font", "", "label font: path or font file name (default embedded "+fonts.DefaultName+")")
}

// resolve builds the effective configuration: defaults, then the config
// file, then any flag the user set explicitly.
func (o *configOpts) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.file != "" {
		loaded, err := config.Load(o.file)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("height") {
		cfg.Height = o.height
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("clear-background") {
		cfg.ClearBackground = o.clearBackground
	}
	if flags.Changed("themes") {
		cfg.Themes = parseThemes(o.themes)
	}
	if flags.Changed("font") {
		cfg.Font = o.font
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseThemes parses a comma-separated theme list, dropping empty entries.
func parseThemes(s string) []string {
	var themes []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			themes = append(themes, t)
		}
	}
	return themes
}
