// Package extset manages the set of file extensions eligible for backup.
package extset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// languageByExtension maps recognized extensions to Markdown fence info-strings.
// Extensions absent from this map produce a plain fence.
var languageByExtension = map[string]string{
	".py":    "python",
	".java":  "java",
	".cpp":   "cpp",
	".c":     "c",
	".h":     "cpp",
	".cs":    "csharp",
	".js":    "javascript",
	".ts":    "typescript",
	".jsx":   "javascript",
	".tsx":   "typescript",
	".rb":    "ruby",
	".go":    "go",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".m":     "objective-c",
	".mm":    "objective-c",
}

// catalogOrder fixes the display and default ordering of the catalog.
var catalogOrder = []string{
	".py", ".java", ".cpp", ".c", ".h", ".cs", ".js", ".ts",
	".jsx", ".tsx", ".rb", ".go", ".php", ".swift", ".kt",
	".m", ".mm",
}

// Catalog returns the full list of extensions the tool recognizes.
func Catalog() []string {
	out := make([]string, len(catalogOrder))
	copy(out, catalogOrder)
	return out
}

// Language returns the Markdown language tag for a file path, or "" when the
// extension has no mapping.
func Language(path string) string {
	return languageByExtension[strings.ToLower(filepath.Ext(path))]
}

// Set is an ordered set of dot-prefixed lowercase extensions used as the
// allow-list during file collection.
type Set struct {
	exts []string
}

// Default returns a Set containing the entire catalog.
func Default() *Set {
	return &Set{exts: Catalog()}
}

// New returns a Set containing the given extensions, normalized to
// dot-prefixed lowercase, duplicates removed, order preserved.
func New(exts ...string) *Set {
	s := &Set{}
	for _, ext := range exts {
		s.insert(normalize(ext))
	}
	return s
}

func normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (s *Set) insert(ext string) {
	if ext == "" || s.Contains(ext) {
		return
	}
	s.exts = append(s.exts, ext)
}

// Add inserts an extension from the catalog. Adding an extension that is
// already present is a no-op; values outside the catalog are rejected.
func (s *Set) Add(ext string) error {
	ext = normalize(ext)
	if _, ok := languageByExtension[ext]; !ok {
		return fmt.Errorf("extension %q is not in the recognized catalog", ext)
	}
	s.insert(ext)
	return nil
}

// Remove deletes an extension. Removing an absent extension is a no-op.
func (s *Set) Remove(ext string) {
	ext = normalize(ext)
	for i, e := range s.exts {
		if e == ext {
			s.exts = append(s.exts[:i], s.exts[i+1:]...)
			return
		}
	}
}

// Contains reports whether the extension is in the set.
func (s *Set) Contains(ext string) bool {
	ext = normalize(ext)
	for _, e := range s.exts {
		if e == ext {
			return true
		}
	}
	return false
}

// Matches reports whether the file name ends with one of the set's extensions.
func (s *Set) Matches(name string) bool {
	lower := strings.ToLower(name)
	for _, e := range s.exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// Extensions returns the set contents in insertion order.
func (s *Set) Extensions() []string {
	out := make([]string, len(s.exts))
	copy(out, s.exts)
	return out
}

// Len returns the number of extensions in the set.
func (s *Set) Len() int {
	return len(s.exts)
}

type configFile struct {
	Extensions []string `yaml:"extensions"`
}

// DefaultConfigPath returns the per-user config file path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".codekeep.yaml"), nil
}

// Load reads the active extension set from a YAML config file. A missing
// file yields the full catalog default.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return Default(), nil
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return New(cfg.Extensions...), nil
}

// Save writes the active extension set to a YAML config file.
func (s *Set) Save(path string) error {
	out, err := yaml.Marshal(configFile{Extensions: s.Extensions()})
	if err != nil {
		return fmt.Errorf("failed to encode extension set: %w", err)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(path, out, perm)
}
