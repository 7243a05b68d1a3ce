package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/doclint/driver"
	"github.com/dhamidi/doclint/java/javadoc"
)

func newTagsCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "tags <file>...",
		Short: "Dump the parsed doc comment tags of every declaration",
		Long: `Dump the tags the scanner finds in each doc comment, with their spans
relative to the comment text and the parsed references. Declarations
without a comment are skipped unless --all is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			units, err := driver.LoadUnits(cmd.Context(), args, driver.Options{})
			if err != nil {
				return err
			}
			report, err := driver.Run(cmd.Context(), cfg, units, driver.Options{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, ur := range report.Units {
				for _, r := range ur.Results {
					if r.Comment == nil && !showAll {
						continue
					}
					d := r.Declaration
					fmt.Fprintf(out, "%s %s (%s) %s:%d:%d\n", d.Kind, d.Name, d.Visibility, ur.Unit.Path, d.Pos.Line, d.Pos.Column)
					for _, line := range strings.Split(strings.TrimRight(javadoc.Format(r.Comment), "\n"), "\n") {
						if line != "" {
							fmt.Fprintf(out, "  %s\n", line)
						}
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "include declarations without a comment")

	return cmd
}
