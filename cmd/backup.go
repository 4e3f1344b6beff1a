package cmd

import (
	"fmt"

	"codekeep/pkg/backup"
	"codekeep/pkg/extset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// DefaultSaveDir is where backup folders land when no save directory is given.
const DefaultSaveDir = "./backup_code"

func newBackupCommand(logger *zap.Logger) *cobra.Command {
	var (
		saveDir       string
		workers       int
		archive       bool
		useGitignore  bool
		excludeGlobs  []string
		maxFileSizeKB int
		extensions    []string
		configPath    string
		tokenCount    bool
		tokenModel    string
	)

	cmd := &cobra.Command{
		Use:   "backup <project-dir>",
		Short: "Back up one project directory into a Markdown document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := resolveExtensionSet(extensions, configPath)
			if err != nil {
				return err
			}

			result, err := backup.Run(backup.Options{
				ProjectDir:    args[0],
				SaveDir:       saveDir,
				Workers:       workers,
				Archive:       archive,
				UseGitignore:  useGitignore,
				ExcludeGlobs:  excludeGlobs,
				MaxFileSizeKB: maxFileSizeKB,
				TokenCount:    tokenCount,
				TokenModel:    tokenModel,
			}, set, logger)
			if err != nil {
				return err
			}

			fmt.Printf("Backup written to: %s\n", result.DocumentPath)
			if result.ArchivePath != "" {
				fmt.Printf("Archive written to: %s\n", result.ArchivePath)
			}
			if tokenCount && result.TokenTotal > 0 {
				fmt.Printf("Document tokens: %d\n", result.TokenTotal)
			}
			fmt.Printf("Files: %d (%d unreadable)\n", result.FilesTotal, result.FilesFailed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&saveDir, "save-dir", "o", DefaultSaveDir, "Directory that receives per-project backup folders")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Worker pool size (0 = number of CPUs, 1 = sequential)")
	cmd.Flags().BoolVarP(&archive, "zip", "z", false, "Compress the finished document into a zip archive")
	cmd.Flags().BoolVar(&useGitignore, "use-gitignore", false, "Skip files matched by the project's .gitignore")
	cmd.Flags().StringSliceVarP(&excludeGlobs, "exclude", "x", nil, "Glob patterns (relative paths) to exclude from collection")
	cmd.Flags().IntVar(&maxFileSizeKB, "max-size", 0, "Skip files larger than this many KB (0 = no limit)")
	cmd.Flags().StringSliceVarP(&extensions, "ext", "e", nil, "Extensions to collect, overriding the configured set")
	cmd.Flags().StringVar(&configPath, "config", "", "Extension set config file (default ~/.codekeep.yaml)")
	cmd.Flags().BoolVar(&tokenCount, "token-count", false, "Count tiktoken tokens of the finished document")
	cmd.Flags().StringVar(&tokenModel, "token-model", backup.DefaultTokenModel, "Tokenizer model for --token-count")

	return cmd
}

// resolveExtensionSet returns the set from --ext when given, otherwise the
// persisted set from the config file (full catalog when absent).
func resolveExtensionSet(extensions []string, configPath string) (*extset.Set, error) {
	if len(extensions) > 0 {
		return extset.New(extensions...), nil
	}
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}
	return extset.Load(path)
}

func resolveConfigPath(configPath string) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return extset.DefaultConfigPath()
}
