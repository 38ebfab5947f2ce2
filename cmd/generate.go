package cmd

import (
	"github.com/spf13/cobra"

	"github.com/miniconomy2025/ca/core"
	"github.com/miniconomy2025/ca/types"
)

func init() {
	RootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "generate the root CA, all team certificates and the distribution bundles",
	Aliases: []string{"gen"},
	RunE:    generateFn,
}

func generateFn(_ *cobra.Command, _ []string) error {
	cfg, err := types.LoadConfig(configFile)
	if err != nil {
		return err
	}

	c, err := core.New(cfg)
	if err != nil {
		return err
	}

	return c.Run()
}
