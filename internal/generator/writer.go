package generator

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Outcome describes what a write attempt did to the target file.
type Outcome int

const (
	Created Outcome = iota
	Overwritten
	SkippedExists
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Overwritten:
		return "overwritten"
	case SkippedExists:
		return "skipped_exists"
	default:
		return "unknown"
	}
}

// Writer writes scaffold files under a fixed root directory, enforcing path
// containment and the overwrite policy. The zero value is not usable; create
// one with NewWriter.
type Writer struct {
	root string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWriter creates a writer rooted at dir. The root itself is not created
// until the first write needs it.
func NewWriter(dir string) (*Writer, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &Writer{root: abs, locks: make(map[string]*sync.Mutex)}, nil
}

// Root returns the absolute root directory all writes are confined to.
func (w *Writer) Root() string {
	return w.root
}

// Resolve joins rel onto the root and verifies the result stays inside it.
func (w *Writer) Resolve(rel string) (string, error) {
	if strings.ContainsRune(rel, 0) {
		return "", &PathEscapeError{Root: w.root, Path: rel}
	}
	abs := filepath.Join(w.root, rel)
	if abs != w.root && !strings.HasPrefix(abs, w.root+string(filepath.Separator)) {
		return "", &PathEscapeError{Root: w.root, Path: rel}
	}
	return abs, nil
}

// EnsureDir creates rel (and any parents) under the root. Idempotent.
// Package generation calls this up front so a permission problem aborts the
// whole operation before any file is attempted.
func (w *Writer) EnsureDir(rel string) error {
	abs, err := w.Resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return &DirectoryCreateError{Dir: abs, Err: err}
	}
	return nil
}

// Write stores content at the path rel under the root.
//
// If the target exists and overwrite is false, Write returns SkippedExists
// with a *ConflictError and leaves the file untouched. Without overwrite the
// commit is a single atomic create-if-absent, so two callers racing on the
// same path cannot both report Created, even across separate Writer
// instances or processes. With overwrite the content lands via temp file and
// rename, and the outcome reports whether the file was created or replaced.
func (w *Writer) Write(rel string, content []byte, overwrite bool) (Outcome, error) {
	path, err := w.Resolve(rel)
	if err != nil {
		return SkippedExists, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SkippedExists, &DirectoryCreateError{Dir: dir, Err: err}
	}

	unlock := w.lock(path)
	defer unlock()

	if !overwrite {
		err := writeFileExclusive(path, content, 0o644)
		if errors.Is(err, fs.ErrExist) {
			return SkippedExists, &ConflictError{Path: path}
		}
		if err != nil {
			return SkippedExists, err
		}
		return Created, nil
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if err := writeFileAtomic(path, content, 0o644); err != nil {
		return SkippedExists, err
	}

	if exists {
		return Overwritten, nil
	}
	return Created, nil
}

// lock serializes the stat+rename pair on the overwrite path, keeping the
// reported outcome consistent within this instance. Returns the unlock func.
func (w *Writer) lock(path string) func() {
	w.mu.Lock()
	l, ok := w.locks[path]
	if !ok {
		l = &sync.Mutex{}
		w.locks[path] = l
	}
	w.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// writeFileAtomic writes data via a temp file in the same directory followed
// by a rename, so the target is either fully written or unchanged.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".hearth-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	renamed = true
	return nil
}

// writeFileExclusive writes data via a temp file, then links it to path.
// The link is the commit: it fails with fs.ErrExist if the target appeared
// in the meantime, making create-if-absent atomic without any lock.
func writeFileExclusive(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".hearth-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Link(tmpPath, path)
}
