package source

import (
	"os"
	"path/filepath"
)

// FileSet is the per-run cache of source files read back for span text and
// diagnostic context. A file is read once; a failed read is remembered and
// returned again without touching the disk. Not safe for concurrent use:
// every snapshot run owns its own set.
type FileSet struct {
	baseDir string
	files   map[string]*File
	failed  map[string]error
}

// NewFileSet creates an empty set resolving relative paths against the
// working directory.
func NewFileSet() *FileSet {
	return &FileSet{
		files:  make(map[string]*File),
		failed: make(map[string]error),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the directory relative paths are resolved against.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Open returns the file at path, reading it on first use.
func (fileSet *FileSet) Open(path string) (*File, error) {
	key := normalizePath(path)
	if f, ok := fileSet.files[key]; ok {
		return f, nil
	}
	if err, ok := fileSet.failed[key]; ok {
		return nil, err
	}

	resolved := path
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(fileSet.BaseDir(), resolved)
	}
	// #nosec G304 -- path comes from the host's source map
	raw, err := os.ReadFile(resolved)
	if err != nil {
		fileSet.failed[key] = err
		return nil, err
	}
	f := newFile(key, raw)
	fileSet.files[key] = f
	return f, nil
}

// Len reports how many files were read successfully.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}
