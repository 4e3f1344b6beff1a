package extset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		wantErr bool
	}{
		{name: "catalog extension", ext: ".py", wantErr: false},
		{name: "missing dot is normalized", ext: "go", wantErr: false},
		{name: "uppercase is normalized", ext: ".PY", wantErr: false},
		{name: "outside catalog", ext: ".exe", wantErr: true},
		{name: "empty", ext: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			err := s.Add(tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, s.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, s.Len())
		})
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s := New()
	require.NoError(t, s.Add(".py"))
	require.NoError(t, s.Add(".py"))
	assert.Equal(t, []string{".py"}, s.Extensions())
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := New(".py", ".go")
	s.Remove(".py")
	s.Remove(".py") // absent, no error and no change
	s.Remove(".rs") // never present
	assert.Equal(t, []string{".go"}, s.Extensions())
}

func TestMatches(t *testing.T) {
	s := New(".py", ".js")

	assert.True(t, s.Matches("main.py"))
	assert.True(t, s.Matches("APP.PY"))
	assert.True(t, s.Matches("widget.js"))
	assert.False(t, s.Matches("README.md"))
	assert.False(t, s.Matches("pyproject.toml"))
}

func TestLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.py", "python"},
		{"sub/b.js", "javascript"},
		{"c.h", "cpp"},
		{"d.mm", "objective-c"},
		{"e.TSX", "typescript"},
		{"unknown.xyz", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Language(tt.path), "path %s", tt.path)
	}
}

func TestDefaultCoversCatalog(t *testing.T) {
	s := Default()
	assert.Equal(t, Catalog(), s.Extensions())
	for _, ext := range Catalog() {
		assert.True(t, s.Contains(ext))
	}
}

func TestLoadMissingFileYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Catalog(), s.Extensions())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codekeep.yaml")

	s := New(".py", ".go", ".ts")
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{".py", ".go", ".ts"}, loaded.Extensions())
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extensions: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
