package backup

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"codekeep/pkg/extset"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// section is one finished per-file block of the output document.
type section struct {
	RelPath string
	Text    string
	Failed  bool
}

// buildSection computes the complete Markdown section for one file: a
// heading with the relative path and a fenced code block tagged with the
// extension's language. A read failure yields a placeholder body instead of
// content; it never propagates.
func buildSection(rec FileRecord, logger *zap.Logger) section {
	lang := extset.Language(rec.AbsPath)

	content, err := readFileText(rec.AbsPath, rec.RelPath, logger)
	failed := false
	if err != nil {
		failed = true
		content = fmt.Sprintf("无法读取文件 %s，错误信息：%v\n", rec.RelPath, err)
		logger.Error("Failed to read file", zap.String("path", rec.RelPath), zap.Error(err))
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("### 文件：%s\n\n", rec.RelPath))
	b.WriteString(fmt.Sprintf("```%s\n", lang))
	b.WriteString(content)
	b.WriteString("```\n\n")

	return section{RelPath: rec.RelPath, Text: b.String(), Failed: failed}
}

// readFileText reads a file as UTF-8 text, falling back to ISO-8859-1 when
// the bytes are not valid UTF-8. The fallback maps every byte, so it can
// only fail with an I/O error.
func readFileText(absPath, relPath string, logger *zap.Logger) (string, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	logger.Info("Falling back to ISO-8859-1 decoding", zap.String("path", relPath))
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
