package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miniconomy2025/ca/cmd/version"
	"github.com/miniconomy2025/ca/types"
)

var (
	debugCount int
	logLevel   string
	configFile string
)

// RootCmd represents the base command. Called without any subcommands it
// performs the full build, same as "ca generate".
var RootCmd = &cobra.Command{
	Use:               "ca",
	Short:             "provision a mutual TLS certificate hierarchy for a fixed roster of teams",
	PersistentPreRunE: preRunFn,
	RunE:              generateFn,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.PersistentFlags().CountVarP(&debugCount, "debug", "d", "enable debug mode")
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info",
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", types.DefaultConfigFileName,
		"path to the team roster configuration file")

	RootCmd.AddCommand(version.VersionCmd)
}

func preRunFn(_ *cobra.Command, _ []string) error {
	// setting log level
	switch {
	case debugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}

		log.SetLevel(l)
	}

	// setting output to stderr, so that json outputs can be parsed
	log.SetOutput(os.Stderr)

	return nil
}
