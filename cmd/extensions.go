package cmd

import (
	"fmt"
	"strings"

	"codekeep/pkg/extset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExtensionsCommand(logger *zap.Logger) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "Manage the set of collected file extensions",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Extension set config file (default ~/.codekeep.yaml)")

	list := &cobra.Command{
		Use:   "list",
		Short: "Show the active extension set and the full catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, _, err := loadConfiguredSet(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("Active: %s\n", strings.Join(set.Extensions(), " "))
			fmt.Printf("Catalog: %s\n", strings.Join(extset.Catalog(), " "))
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <ext>...",
		Short: "Add catalog extensions to the active set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfiguredSet(configPath, logger, func(set *extset.Set) error {
				for _, ext := range args {
					if err := set.Add(ext); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <ext>...",
		Short: "Remove extensions from the active set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfiguredSet(configPath, logger, func(set *extset.Set) error {
				for _, ext := range args {
					set.Remove(ext)
				}
				return nil
			})
		},
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Reset the active set to the full catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(configPath)
			if err != nil {
				return err
			}
			if err := extset.Default().Save(path); err != nil {
				return err
			}
			logger.Info("Reset extension set", zap.String("config", path))
			return nil
		},
	}

	cmd.AddCommand(list, add, remove, reset)
	return cmd
}

func loadConfiguredSet(configPath string) (*extset.Set, string, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, "", err
	}
	set, err := extset.Load(path)
	if err != nil {
		return nil, "", err
	}
	return set, path, nil
}

func updateConfiguredSet(configPath string, logger *zap.Logger, mutate func(*extset.Set) error) error {
	set, path, err := loadConfiguredSet(configPath)
	if err != nil {
		return err
	}
	if err := mutate(set); err != nil {
		return err
	}
	if err := set.Save(path); err != nil {
		return err
	}
	logger.Info("Updated extension set",
		zap.String("config", path),
		zap.Strings("extensions", set.Extensions()))
	return nil
}
