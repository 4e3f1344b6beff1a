package cmd

import (
	"codekeep/pkg/menu"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMenuCommand(logger *zap.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive backup menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(configPath)
			if err != nil {
				return err
			}
			return menu.New(path, logger).Run()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Extension set config file (default ~/.codekeep.yaml)")
	return cmd
}
