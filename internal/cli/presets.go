package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/fetchkit/internal/config"
)

func newPresetsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the presets of a preset file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			vars, err := config.ParseVariables(opts.vars)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range cfg.Names() {
				c, err := cfg.Container(name, vars)
				if err != nil {
					return err
				}
				kind := c.ResolveAs()
				if kind == "" {
					kind = "response"
				}
				fmt.Fprintf(out, "%-16s %-6s %s (%s)\n", name, c.Method(), c.URL, kind)
			}
			return nil
		},
	}
}
