package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// RenderTree returns a textual tree of the directory rooted at its own base
// name. Children at every level are sorted case-insensitively with
// directories and files interleaved by name. A directory that cannot be
// listed is rendered with no children.
func RenderTree(root string, logger *zap.Logger) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	var b strings.Builder
	b.WriteString(filepath.Base(absRoot) + "/\n")
	renderSubtree(&b, absRoot, "", logger)
	return b.String()
}

func renderSubtree(b *strings.Builder, dir, prefix string, logger *zap.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Failed to list directory for tree", zap.String("directory", dir), zap.Error(err))
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		li, lj := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if li == lj {
			return entries[i].Name() < entries[j].Name()
		}
		return li < lj
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.IsDir() {
			b.WriteString(prefix + connector + entry.Name() + "/\n")
			renderSubtree(b, filepath.Join(dir, entry.Name()), prefix+extension, logger)
		} else {
			b.WriteString(prefix + connector + entry.Name() + "\n")
		}
	}
}
