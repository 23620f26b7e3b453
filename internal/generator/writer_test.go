package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	return w
}

func TestWriter_CreatesFileAndParents(t *testing.T) {
	w := newTestWriter(t)

	outcome, err := w.Write(filepath.Join("a", "b", "c.yaml"), []byte("x: 1\n"), false)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)

	content, err := os.ReadFile(filepath.Join(w.Root(), "a", "b", "c.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", string(content))
}

func TestWriter_OverwritePolicy(t *testing.T) {
	w := newTestWriter(t)

	_, err := w.Write("f.yaml", []byte("first\n"), false)
	require.NoError(t, err)

	// Second write without overwrite keeps the original content.
	outcome, err := w.Write("f.yaml", []byte("second\n"), false)
	assert.Equal(t, SkippedExists, outcome)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Path, "f.yaml")

	content, err := os.ReadFile(filepath.Join(w.Root(), "f.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))

	// With overwrite the content is replaced.
	outcome, err = w.Write("f.yaml", []byte("second\n"), true)
	require.NoError(t, err)
	assert.Equal(t, Overwritten, outcome)

	content, err = os.ReadFile(filepath.Join(w.Root(), "f.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(content))
}

func TestWriter_RejectsEscapingPaths(t *testing.T) {
	w := newTestWriter(t)

	tests := []struct {
		name string
		rel  string
	}{
		{"parent traversal", "../outside.yaml"},
		{"nested traversal", "a/../../outside.yaml"},
		{"deep traversal", "../../../../etc/passwd"},
		{"null byte", "a\x00b.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Write(tt.rel, []byte("x"), false)

			var escape *PathEscapeError
			require.ErrorAs(t, err, &escape)

			// Nothing may appear outside the root.
			entries, readErr := os.ReadDir(filepath.Dir(w.Root()))
			require.NoError(t, readErr)
			for _, e := range entries {
				assert.NotEqual(t, "outside.yaml", e.Name())
			}
		})
	}
}

func TestWriter_AbsoluteInputStaysInsideRoot(t *testing.T) {
	w := newTestWriter(t)

	// filepath.Join flattens the leading separator; the write must land
	// under the root, not at the filesystem root.
	outcome, err := w.Write("/etc/passwd", []byte("x"), false)
	require.NoError(t, err)
	assert.Equal(t, Created, outcome)

	_, err = os.Stat(filepath.Join(w.Root(), "etc", "passwd"))
	assert.NoError(t, err)
}

func TestWriter_DirectoryCreateError(t *testing.T) {
	w := newTestWriter(t)

	// A file where a parent directory is needed makes MkdirAll fail.
	_, err := w.Write("blocker", []byte("x"), false)
	require.NoError(t, err)

	_, err = w.Write(filepath.Join("blocker", "child.yaml"), []byte("x"), false)

	var dirErr *DirectoryCreateError
	require.ErrorAs(t, err, &dirErr)
}

func TestWriter_EnsureDir(t *testing.T) {
	w := newTestWriter(t)

	require.NoError(t, w.EnsureDir("pkg"))
	require.NoError(t, w.EnsureDir("pkg"), "EnsureDir must be idempotent")

	info, err := os.Stat(filepath.Join(w.Root(), "pkg"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	var escape *PathEscapeError
	require.ErrorAs(t, w.EnsureDir("../pkg"), &escape)
}

func TestWriter_NoPartialFileLeftBehind(t *testing.T) {
	w := newTestWriter(t)

	_, err := w.Write("f.yaml", []byte("content\n"), false)
	require.NoError(t, err)

	entries, err := os.ReadDir(w.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files may remain")
	assert.Equal(t, "f.yaml", entries[0].Name())
}

func TestWriter_ConcurrentWritesSamePath(t *testing.T) {
	w := newTestWriter(t)

	const workers = 8
	outcomes := make([]Outcome, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, _ := w.Write("race.yaml", []byte("content\n"), false)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	created, skipped := 0, 0
	for _, o := range outcomes {
		switch o {
		case Created:
			created++
		case SkippedExists:
			skipped++
		}
	}
	assert.Equal(t, 1, created, "exactly one writer may create the file")
	assert.Equal(t, workers-1, skipped)
}

func TestWriter_ConcurrentCreateAcrossInstances(t *testing.T) {
	root := t.TempDir()

	// Each goroutine gets its own Writer over the same root, the way two
	// service dispatches do. Exactly one create may win regardless.
	const workers = 16
	outcomes := make([]Outcome, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w, err := NewWriter(root)
			if err != nil {
				errs[i] = err
				return
			}
			outcomes[i], errs[i] = w.Write("race.yaml", []byte(fmt.Sprintf("writer: %d\n", i)), false)
		}(i)
	}
	wg.Wait()

	winner := -1
	for i := range outcomes {
		switch outcomes[i] {
		case Created:
			require.NoError(t, errs[i])
			require.Equal(t, -1, winner, "writers %d and %d both reported created", winner, i)
			winner = i
		case SkippedExists:
			var conflict *ConflictError
			require.ErrorAs(t, errs[i], &conflict, "writer %d", i)
		default:
			t.Errorf("writer %d: unexpected outcome %s (err %v)", i, outcomes[i], errs[i])
		}
	}
	require.NotEqual(t, -1, winner, "no writer reported created")

	// The surviving content belongs to the winner, not a later loser.
	content, err := os.ReadFile(filepath.Join(root, "race.yaml"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("writer: %d\n", winner), string(content))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "created", Created.String())
	assert.Equal(t, "overwritten", Overwritten.String())
	assert.Equal(t, "skipped_exists", SkippedExists.String())
}
