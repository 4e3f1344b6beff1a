package backup

import (
	"io/fs"
	"os"
	"path/filepath"

	"codekeep/pkg/extset"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// CollectOptions narrows which files CollectFiles returns beyond the
// extension set. The zero value reproduces the plain extension walk.
type CollectOptions struct {
	UseGitignore  bool
	ExcludeGlobs  []string
	MaxFileSizeKB int
}

// CollectFiles walks the project directory top-down and returns a FileRecord
// for every file whose name ends with one of the set's extensions.
// Traversal order across siblings is the WalkDir order and is not part of
// the contract. Unreadable subtrees are logged and skipped, never fatal.
// Directory symlinks are not followed, so link cycles cannot occur.
func CollectFiles(projectDir string, set *extset.Set, opts CollectOptions, logger *zap.Logger) ([]FileRecord, error) {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, err
	}

	var gi *ignore.GitIgnore
	if opts.UseGitignore {
		gitIgnorePath := filepath.Join(absDir, ".gitignore")
		if _, statErr := os.Stat(gitIgnorePath); statErr == nil {
			gi, err = ignore.CompileIgnoreFile(gitIgnorePath)
			if err != nil {
				return nil, err
			}
		}
	}

	var records []FileRecord
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Error accessing path during collection", zap.String("path", path), zap.Error(err))
			return nil
		}
		if path == absDir {
			return nil
		}

		rel, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			logger.Warn("Failed to compute relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gi != nil && gi.MatchesPath(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if !set.Matches(d.Name()) {
			return nil
		}
		if matchesAnyGlob(rel, opts.ExcludeGlobs) {
			logger.Debug("Skipping excluded file", zap.String("path", rel))
			return nil
		}
		if opts.MaxFileSizeKB > 0 {
			info, infoErr := d.Info()
			if infoErr != nil {
				logger.Warn("Failed to stat file during collection", zap.String("path", path), zap.Error(infoErr))
				return nil
			}
			if info.Size() > int64(opts.MaxFileSizeKB)*1024 {
				logger.Warn("Skipping file over size limit",
					zap.String("path", rel),
					zap.Int64("sizeBytes", info.Size()),
					zap.Int("maxSizeKB", opts.MaxFileSizeKB))
				return nil
			}
		}

		records = append(records, FileRecord{AbsPath: path, RelPath: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Completed file collection", zap.Int("files", len(records)))
	return records, nil
}

func matchesAnyGlob(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
