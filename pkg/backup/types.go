package backup

import "time"

// FileRecord is a discovered source file: its absolute path and its
// slash-separated path relative to the project root.
type FileRecord struct {
	AbsPath string
	RelPath string
}

// Options holds the configuration for a single backup run.
type Options struct {
	ProjectDir    string   // Directory to back up; must exist and be a directory.
	SaveDir       string   // Parent directory for per-project backup folders.
	Workers       int      // Worker pool size; <=0 means NumCPU, 1 means sequential.
	Archive       bool     // Compress the finished document into a zip.
	UseGitignore  bool     // Honor the project's .gitignore during collection.
	ExcludeGlobs  []string // Glob patterns (doublestar) excluded from collection.
	MaxFileSizeKB int      // Skip files larger than this; 0 disables the limit.
	TokenCount    bool     // Count tiktoken tokens of the finished document.
	TokenModel    string   // Model name for the tokenizer.
}

// Result describes the artifacts of a completed backup run.
type Result struct {
	BackupDir    string
	DocumentPath string
	ArchivePath  string
	LogPath      string
	FilesTotal   int
	FilesFailed  int
	TokenTotal   int
	Elapsed      time.Duration
}
