// Package generator executes scaffold file operations against a sandboxed
// root directory.
//
// # Safety
//
// Every write resolves its target under a fixed root and refuses paths that
// escape it, so a crafted name can never produce ../../etc/passwd. Content
// lands via a temp file and an atomic commit, so a crash never leaves a
// partial file. Creating without overwrite commits with an exclusive link,
// so two concurrent calls cannot both observe "absent" and clobber each
// other, even from separate Writer instances over the same root.
//
// # Conflicts
//
// A target that already exists is skipped unless overwrite was requested.
// Skips are per file and non-fatal: the executor records the outcome and
// moves on. An optional Resolver can instead prompt the user, show a diff,
// or force the overwrite.
package generator
