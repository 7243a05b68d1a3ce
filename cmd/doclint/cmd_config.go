package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dhamidi/doclint/config"
	"github.com/dhamidi/doclint/diag"
)

func newConfigCmd() *cobra.Command {
	var (
		defaults   bool
		categories bool
		features   bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration a check would use, as TOML. With --categories,
list every diagnostic category with its id, option group and message. With
--features, list the checks that depend on the compliance level and whether
the configured level enables them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if categories {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tGROUP\tMESSAGE")
				for _, c := range diag.Categories() {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID(), c, c.Group(), c.Template())
				}
				return w.Flush()
			}

			cfg := config.Default()
			if !defaults {
				var err error
				if cfg, err = loadConfig(); err != nil {
					return err
				}
			}
			if features {
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "FEATURE\tSINCE\tENABLED (%s)\n", cfg.Compliance)
				for _, f := range config.Features() {
					fmt.Fprintf(w, "%s\t%s\t%t\n", f, f.Since(), cfg.Supports(f))
				}
				return w.Flush()
			}
			_, err := fmt.Fprint(out, cfg.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults instead")
	cmd.Flags().BoolVar(&categories, "categories", false, "list the diagnostic categories")
	cmd.Flags().BoolVar(&features, "features", false, "list the compliance-dependent checks")

	return cmd
}
