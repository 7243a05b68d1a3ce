package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/doclint/config"
)

const version = "0.1.0"

// errFindings makes the process exit with status 1 without printing
// anything more; the findings have already been rendered.
var errFindings = errors.New("error-level diagnostics reported")

var (
	verbosity  int
	logFile    string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "doclint",
		Short:         "Check Javadoc comments of compilation units",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&logFile, "log", "", "write logs to this file instead of stderr")
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default: nearest "+config.FileName+")")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintln(os.Stderr, "doclint:", err)
		}
		os.Exit(1)
	}
}

// loadConfig returns the configuration named by --config, or the nearest
// one above the working directory, or the defaults.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.Default(), nil
		}
		path = found
	}
	return config.Load(path)
}
