package backup

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestBuildSectionUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))

	sec := buildSection(FileRecord{AbsPath: path, RelPath: "hello.py"}, zap.NewNop())

	assert.False(t, sec.Failed)
	assert.Equal(t, "### 文件：hello.py\n\n```python\nprint('hi')\n```\n\n", sec.Text)
}

func TestBuildSectionUnmappedExtensionPlainFence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odd.xyz")
	require.NoError(t, os.WriteFile(path, []byte("data\n"), 0o644))

	sec := buildSection(FileRecord{AbsPath: path, RelPath: "odd.xyz"}, zap.NewNop())

	assert.Contains(t, sec.Text, "```\ndata\n")
}

func TestBuildSectionAddsTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonl.go")
	require.NoError(t, os.WriteFile(path, []byte("package x"), 0o644))

	sec := buildSection(FileRecord{AbsPath: path, RelPath: "nonl.go"}, zap.NewNop())

	assert.Contains(t, sec.Text, "package x\n```\n")
}

func TestBuildSectionLatin1Fallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.c")
	// 0xE9 is 'é' in ISO-8859-1 and invalid as a standalone UTF-8 byte.
	raw := []byte{'c', 'a', 'f', 0xE9, '\n'}
	require.False(t, utf8.Valid(raw))
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	sec := buildSection(FileRecord{AbsPath: path, RelPath: "legacy.c"}, zap.NewNop())

	assert.False(t, sec.Failed, "fallback decoding must not produce a placeholder")
	assert.Contains(t, sec.Text, "café\n")
	assert.True(t, utf8.ValidString(sec.Text))
}

func TestBuildSectionReadErrorPlaceholder(t *testing.T) {
	sec := buildSection(FileRecord{
		AbsPath: filepath.Join(t.TempDir(), "gone.py"),
		RelPath: "gone.py",
	}, zap.NewNop())

	assert.True(t, sec.Failed)
	assert.Contains(t, sec.Text, "### 文件：gone.py\n")
	assert.Contains(t, sec.Text, "无法读取文件 gone.py，错误信息：")
}
