package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/fetchkit/internal/debug"
)

var version = "0.1.0"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	vars       []string
	format     string
	verbose    bool
	noColor    bool
	debug      bool
	timeout    time.Duration
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:     "fetchkit",
		Short:   "Compose layered HTTP requests and resolve their responses",
		Version: version,
		Long: `fetchkit issues HTTP requests built from layered presets and prints the
response resolved as json, text, arraybuffer, blob, formdata, document or
the raw response.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.SetupLogger(opts.debug)
			cmd.SetContext(debug.WithDebug(cmd.Context(), opts.debug))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Preset file (YAML or JSON)")
	flags.StringArrayVar(&opts.vars, "var", nil, "Preset variable as key=value (can be used multiple times)")
	flags.StringVarP(&opts.format, "format", "o", "text", "Output format: text, json or yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second, "Request timeout")

	root.AddCommand(newRequestCmd(opts, "request [URL]", ""))
	for _, method := range []string{"get", "head", "delete", "post", "put", "patch"} {
		root.AddCommand(newRequestCmd(opts, method+" [URL]", method))
	}
	root.AddCommand(newPresetsCmd(opts))

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
