package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Op is a single scaffold file staged for writing. Path is relative to the
// writer's root.
type Op struct {
	Path    string
	Content []byte
}

// Result pairs a staged file with its write outcome.
type Result struct {
	Path    string
	Outcome Outcome
}

// ExecuteOptions configures execution behavior.
type ExecuteOptions struct {
	DryRun    bool
	Overwrite bool
	Resolver  *Resolver // consulted on conflicts when Overwrite is false
	Out       io.Writer // where to report progress (defaults to os.Stdout)
}

// Execute writes staged files through w and reports one Result per file.
//
// Conflicts are best-effort per file: a skipped file does not abort the
// remaining writes. Fatal errors (path escape, directory creation, IO) stop
// execution and return the results collected so far.
func Execute(ctx context.Context, w *Writer, ops []Op, opts ExecuteOptions) ([]Result, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		if opts.DryRun {
			outcome, err := w.preview(op.Path, opts.Overwrite)
			if err != nil {
				return results, err
			}
			fmt.Fprintf(opts.Out, "✓ [DRY RUN] %s → %s (%d bytes)\n", op.Path, outcome, len(op.Content))
			results = append(results, Result{Path: op.Path, Outcome: outcome})
			continue
		}

		outcome, err := w.Write(op.Path, op.Content, opts.Overwrite)

		var conflict *ConflictError
		if errors.As(err, &conflict) {
			outcome, err = resolveConflict(w, op, conflict, opts.Resolver)
			if err != nil {
				results = append(results, Result{Path: op.Path, Outcome: SkippedExists})
				return results, err
			}
		} else if err != nil {
			return results, err
		}

		switch outcome {
		case SkippedExists:
			fmt.Fprintf(opts.Out, "- Skipped %s (already exists)\n", op.Path)
		default:
			fmt.Fprintf(opts.Out, "✓ %s %s (%d bytes)\n", titleOutcome(outcome), op.Path, len(op.Content))
		}
		results = append(results, Result{Path: op.Path, Outcome: outcome})
	}

	return results, nil
}

// resolveConflict asks the resolver what to do with an existing file.
// Without a resolver the file is skipped, matching the default policy.
func resolveConflict(w *Writer, op Op, conflict *ConflictError, r *Resolver) (Outcome, error) {
	if r == nil {
		return SkippedExists, nil
	}

	existing, err := os.ReadFile(conflict.Path)
	if err != nil {
		return SkippedExists, fmt.Errorf("reading existing file %s: %w", conflict.Path, err)
	}

	resolution, err := r.Resolve(conflict.Path, existing, op.Content)
	if err != nil {
		return SkippedExists, err
	}

	switch resolution {
	case Overwrite:
		return w.Write(op.Path, op.Content, true)
	case Cancel:
		return SkippedExists, fmt.Errorf("cancelled at %s", op.Path)
	default:
		return SkippedExists, nil
	}
}

// preview computes the outcome a write would have, without writing.
func (w *Writer) preview(rel string, overwrite bool) (Outcome, error) {
	path, err := w.Resolve(rel)
	if err != nil {
		return SkippedExists, err
	}
	if _, err := os.Stat(path); err == nil {
		if overwrite {
			return Overwritten, nil
		}
		return SkippedExists, nil
	}
	return Created, nil
}

func titleOutcome(o Outcome) string {
	if o == Overwritten {
		return "Overwrote"
	}
	return "Created"
}
