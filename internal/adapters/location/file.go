package location

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"onepage/internal/ports"
)

// File keeps the document's fragment in a small state file so a
// reopened document resumes at its last active section. Replace writes
// through a temp file and rename, leaving no intermediate state on
// disk; Assign writes in place.
type File struct {
	path string
}

var _ ports.Location = (*File)(nil)

// New returns a file-backed location for the given document path.
func New(docPath string) *File {
	return &File{path: statePath(docPath)}
}

// NewAt returns a location backed by an explicit file path.
func NewAt(path string) *File {
	return &File{path: path}
}

// Fragment returns the stored fragment identifier, empty when unset.
func (f *File) Fragment() string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.TrimSpace(string(data)), "#")
}

// CanReplace reports whether atomic replacement is available.
func (f *File) CanReplace() bool { return true }

// Replace rewrites the fragment atomically via rename.
func (f *File) Replace(fragment string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte("#"+fragment+"\n"), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Assign writes the fragment directly.
func (f *File) Assign(fragment string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte("#"+fragment+"\n"), 0644)
}

// statePath places the fragment file under the XDG state directory,
// one file per document.
func statePath(docPath string) string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	h := sha256.Sum256([]byte(docPath))
	return filepath.Join(stateHome, "onepage", hex.EncodeToString(h[:8])+".fragment")
}
