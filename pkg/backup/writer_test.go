package backup

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func makeRecords(t *testing.T, root string, n int) []FileRecord {
	t.Helper()
	records := make([]FileRecord, 0, n)
	for i := 0; i < n; i++ {
		rel := fmt.Sprintf("f%02d.py", i)
		writeTestFile(t, filepath.Join(root, rel))
		records = append(records, FileRecord{
			AbsPath: filepath.Join(root, rel),
			RelPath: rel,
		})
	}
	return records
}

func TestWriteSectionsSequentialPreservesCollectionOrder(t *testing.T) {
	root := t.TempDir()
	records := makeRecords(t, root, 5)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	failed, err := writeSections(w, records, 1, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, failed)

	out := buf.String()
	prev := -1
	for _, rec := range records {
		idx := strings.Index(out, "### 文件："+rec.RelPath+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing section for %s", rec.RelPath)
		assert.Greater(t, idx, prev, "section %s out of order", rec.RelPath)
		prev = idx
	}
}

func TestWriteSectionsConcurrentHasOneSectionPerFile(t *testing.T) {
	root := t.TempDir()
	records := makeRecords(t, root, 20)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	failed, err := writeSections(w, records, 8, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, failed)

	out := buf.String()
	for _, rec := range records {
		assert.Equal(t, 1, strings.Count(out, "### 文件："+rec.RelPath+"\n"))
	}
	// Sections interleave only at section granularity.
	assert.Equal(t, len(records), strings.Count(out, "### 文件："))
	assert.Equal(t, 2*len(records), strings.Count(out, "```"))
}

func TestWriteSectionsCountsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	records := makeRecords(t, root, 3)
	records = append(records, FileRecord{
		AbsPath: filepath.Join(root, "missing.py"),
		RelPath: "missing.py",
	})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	failed, err := writeSections(w, records, 4, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Contains(t, buf.String(), "无法读取文件 missing.py，错误信息：")
}

func TestWriteSectionsEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	failed, err := writeSections(w, nil, 4, zap.NewNop())
	require.NoError(t, err)
	assert.Zero(t, failed)
	assert.Empty(t, buf.String())
}
