// Package service exposes the scaffold operations behind a name-keyed
// registry, decoupling the engine from whatever dispatch mechanism the host
// platform uses. Hosts (or the CLI) hand a request dictionary to Dispatch
// and get back one outcome per file attempted.
package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/hearthkit/hearth/internal/config"
	"github.com/hearthkit/hearth/internal/generator"
)

// Service names.
const (
	GenerateAutomationService = "generate_automation"
	GeneratePackageService    = "generate_package"
)

// Operation executes one scaffold service call from decoded request data.
type Operation interface {
	Name() string
	Execute(ctx context.Context, data map[string]any) ([]generator.Result, error)
}

// Registry maps service names to operations.
type Registry struct {
	ops map[string]Operation
}

// NewRegistry creates a registry holding the given operations.
func NewRegistry(ops ...Operation) *Registry {
	r := &Registry{ops: make(map[string]Operation, len(ops))}
	for _, op := range ops {
		r.Register(op)
	}
	return r
}

// NewDefaultRegistry wires up both scaffold services against the given roots.
// Progress output goes to out (io.Discard when nil).
func NewDefaultRegistry(paths config.RootPaths, out io.Writer) *Registry {
	return NewRegistry(
		&GenerateAutomation{Paths: paths, Out: out},
		&GeneratePackage{Paths: paths, Out: out},
	)
}

// Register adds or replaces an operation.
func (r *Registry) Register(op Operation) {
	r.ops[op.Name()] = op
}

// Dispatch runs the named operation with the given request data.
func (r *Registry) Dispatch(ctx context.Context, name string, data map[string]any) ([]generator.Result, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("unknown service %q (have %v)", name, r.Names())
	}
	return op.Execute(ctx, data)
}

// Names lists the registered service names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
