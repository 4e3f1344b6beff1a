package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCommand creates the base command and attaches all subcommands.
func NewRootCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codekeep",
		Short: "codekeep backs up a project's source code into a single Markdown document",
		Long: `codekeep walks a project directory, collects source files by extension,
and writes one Markdown document containing the directory tree and the
contents of every matched file, optionally compressed into a zip archive.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newBackupCommand(logger))
	cmd.AddCommand(newMenuCommand(logger))
	cmd.AddCommand(newExtensionsCommand(logger))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// Execute runs the root command.
func Execute(logger *zap.Logger) error {
	return NewRootCommand(logger).Execute()
}
