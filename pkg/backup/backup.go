// Package backup implements the core pipeline: collect source files by
// extension, render the directory tree, and write a single Markdown
// document with the concatenated file contents, optionally archived.
package backup

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codekeep/pkg/extset"
	"codekeep/pkg/logging"

	"go.uber.org/zap"
)

// RunLogFileName is the per-run log file created inside the backup folder.
const RunLogFileName = "backup.log"

// Run executes one backup: it validates the project directory, creates a
// uniquely named backup folder under SaveDir, writes the Markdown document
// (header, tree, one section per collected file), and optionally archives
// it. Setup failures abort the run; per-file failures become placeholder
// sections and are counted in the result.
func Run(opts Options, set *extset.Set, logger *zap.Logger) (*Result, error) {
	start := time.Now()

	absProject, err := filepath.Abs(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project path: %w", err)
	}
	info, err := os.Stat(absProject)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project path %s does not exist or is not a directory", opts.ProjectDir)
	}
	projectName := filepath.Base(absProject)

	if err := os.MkdirAll(opts.SaveDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}

	backupDir, err := createBackupDir(opts.SaveDir, projectName)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup folder: %w", err)
	}

	logPath := filepath.Join(backupDir, RunLogFileName)
	runLogger, err := logging.NewRunLogger(logPath, false)
	if err != nil {
		logger.Warn("Failed to open run log file, continuing without it",
			zap.String("path", logPath), zap.Error(err))
		runLogger = logger
		logPath = ""
	} else {
		defer runLogger.Sync()
	}

	runLogger.Info("Starting backup",
		zap.String("project", absProject),
		zap.String("backupDir", backupDir),
		zap.Strings("extensions", set.Extensions()))

	files, err := CollectFiles(absProject, set, CollectOptions{
		UseGitignore:  opts.UseGitignore,
		ExcludeGlobs:  opts.ExcludeGlobs,
		MaxFileSizeKB: opts.MaxFileSizeKB,
	}, runLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	runLogger.Info("Collected source files", zap.Int("count", len(files)))

	docName := fmt.Sprintf("%s_%s.md", projectName, start.Format("20060102_1504"))
	docPath := filepath.Join(backupDir, docName)

	failed, err := writeDocument(docPath, projectName, absProject, files, opts.Workers, runLogger)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BackupDir:    backupDir,
		DocumentPath: docPath,
		LogPath:      logPath,
		FilesTotal:   len(files),
		FilesFailed:  failed,
	}

	if opts.Archive {
		archivePath, archiveErr := ArchiveDocument(docPath, runLogger)
		if archiveErr != nil {
			runLogger.Error("Archiving failed, document is unaffected", zap.Error(archiveErr))
		} else {
			result.ArchivePath = archivePath
		}
	}

	if opts.TokenCount {
		tokens, tokenErr := CountDocumentTokens(docPath, opts.TokenModel)
		if tokenErr != nil {
			runLogger.Error("Token counting failed", zap.Error(tokenErr))
		} else {
			result.TokenTotal = tokens
			runLogger.Info("Counted document tokens", zap.Int("tokens", tokens))
		}
	}

	result.Elapsed = time.Since(start)
	runLogger.Info("Backup completed",
		zap.String("document", docPath),
		zap.Int("files", result.FilesTotal),
		zap.Int("failedFiles", result.FilesFailed),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

// writeDocument creates the output document, writes the fixed parts
// (header and tree) synchronously, then appends the per-file sections
// through the worker pool.
func writeDocument(docPath, projectName, absProject string, files []FileRecord, workers int, logger *zap.Logger) (int, error) {
	out, err := os.Create(docPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output document: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logger.Error("Failed to close output document", zap.String("path", docPath), zap.Error(closeErr))
		}
	}()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "# 项目名称：%s\n\n", projectName)
	fmt.Fprintf(w, "## 项目目录结构：\n\n")
	fmt.Fprintf(w, "```\n%s```\n\n", RenderTree(absProject, logger))
	fmt.Fprintf(w, "## 所有源代码文件的内容：\n\n")
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write document header: %w", err)
	}

	failed, err := writeSections(w, files, workers, logger)
	if err != nil {
		return failed, fmt.Errorf("failed to write file sections: %w", err)
	}
	return failed, nil
}

// createBackupDir creates <saveDir>/<project>, appending an incrementing
// numeric suffix when a same-named folder already exists.
func createBackupDir(saveDir, projectName string) (string, error) {
	base := filepath.Join(saveDir, projectName)
	candidate := base
	for suffix := 1; ; suffix++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			break
		}
		candidate = fmt.Sprintf("%s_%d", base, suffix)
	}
	if err := os.Mkdir(candidate, 0o755); err != nil {
		return "", err
	}
	return candidate, nil
}
