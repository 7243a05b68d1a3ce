package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/doclint/diagfmt"
	"github.com/dhamidi/doclint/driver"
)

func newCheckCmd() *cobra.Command {
	var (
		jobs      int
		outFormat string
		colorMode string
		noCache   bool
		noContext bool
	)

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check the doc comments of unit files",
		Long: `Check the doc comments of the compilation units described by YAML unit
files. Directories are searched for *.yaml and *.yml files; with no
arguments the current directory is checked.

All units are resolved against each other, so references between files
work. The exit status is 1 when any error-level diagnostic is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			files, err := driver.UnitFiles(args)
			if err != nil {
				return err
			}
			opts := driver.Options{Jobs: jobs, Version: version}
			if !noCache {
				cache, err := driver.OpenCache("doclint")
				if err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
				opts.Cache = cache
			}

			units, err := driver.LoadUnits(cmd.Context(), files, opts)
			if err != nil {
				return err
			}
			report, err := driver.Run(cmd.Context(), cfg, units, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outFormat {
			case "pretty":
				switch colorMode {
				case "always":
					color.NoColor = false
				case "never":
					color.NoColor = true
				case "auto":
				default:
					return fmt.Errorf("unknown color mode: %s (expected auto, always, or never)", colorMode)
				}
				err = diagfmt.Pretty(out, report.Diagnostics, diagfmt.NewSources(units), diagfmt.PrettyOpts{
					Color:   !color.NoColor,
					Context: !noContext,
				})
				if err == nil && len(report.Diagnostics) > 0 {
					err = diagfmt.Summary(os.Stderr, report.Diagnostics)
				}
			case "json":
				err = diagfmt.JSON(out, report.Diagnostics)
			default:
				return fmt.Errorf("unknown format: %s (expected pretty or json)", outFormat)
			}
			if err != nil {
				return err
			}

			if report.HasErrors() {
				return errFindings
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of units checked in parallel (default: number of CPUs)")
	cmd.Flags().StringVarP(&outFormat, "format", "f", "pretty", "output format (pretty, json)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize output (auto, always, never)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or write the result cache")
	cmd.Flags().BoolVar(&noContext, "no-context", false, "do not print the source line under each diagnostic")

	return cmd
}
