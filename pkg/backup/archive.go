package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ArchiveDocument compresses the finished document into a zip archive at a
// sibling path with the same stem. The archive contains exactly the one
// document, stored under its base name. The document itself is never
// touched; on failure a partial archive is removed.
func ArchiveDocument(docPath string, logger *zap.Logger) (string, error) {
	zipPath := strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".zip"

	src, err := os.Open(docPath)
	if err != nil {
		return "", fmt.Errorf("failed to open document for archiving: %w", err)
	}
	defer src.Close()

	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	entry, err := zw.Create(filepath.Base(docPath))
	if err == nil {
		_, err = io.Copy(entry, src)
	}
	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		if rmErr := os.Remove(zipPath); rmErr != nil {
			logger.Warn("Failed to remove partial archive", zap.String("path", zipPath), zap.Error(rmErr))
		}
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	logger.Info("Archived document", zap.String("archive", zipPath))
	return zipPath, nil
}
