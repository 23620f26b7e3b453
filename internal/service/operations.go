package service

import (
	"context"
	"io"

	"github.com/hearthkit/hearth/internal/config"
	"github.com/hearthkit/hearth/internal/generator"
	"github.com/hearthkit/hearth/internal/generators/automation"
	"github.com/hearthkit/hearth/internal/generators/pack"
)

// GenerateAutomation handles the generate_automation service: one automation
// file under <config_root>/automation_helper/.
type GenerateAutomation struct {
	Paths config.RootPaths
	Out   io.Writer
}

func (s *GenerateAutomation) Name() string {
	return GenerateAutomationService
}

func (s *GenerateAutomation) Execute(ctx context.Context, data map[string]any) ([]generator.Result, error) {
	req, overwrite, err := decodeAutomation(data)
	if err != nil {
		return nil, err
	}

	ops, err := automation.NewGenerator().Generate(req)
	if err != nil {
		return nil, err
	}

	w, err := generator.NewWriter(s.Paths.AutomationsDir())
	if err != nil {
		return nil, err
	}

	return generator.Execute(ctx, w, ops, generator.ExecuteOptions{
		Overwrite: overwrite,
		Out:       s.out(),
	})
}

func (s *GenerateAutomation) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

// GeneratePackage handles the generate_package service: a directory under
// <config_root>/packages/<slug>/ with one outcome per file attempted.
type GeneratePackage struct {
	Paths config.RootPaths
	Out   io.Writer
}

func (s *GeneratePackage) Name() string {
	return GeneratePackageService
}

func (s *GeneratePackage) Execute(ctx context.Context, data map[string]any) ([]generator.Result, error) {
	opts, overwrite, err := decodePackage(data)
	if err != nil {
		return nil, err
	}

	dir, ops, err := pack.NewGenerator().Generate(opts)
	if err != nil {
		return nil, err
	}

	w, err := generator.NewWriter(s.Paths.PackagesDir())
	if err != nil {
		return nil, err
	}

	// Fail fast if the package directory itself cannot be created; no file
	// writes are attempted in that case.
	if err := w.EnsureDir(dir); err != nil {
		return nil, err
	}

	return generator.Execute(ctx, w, ops, generator.ExecuteOptions{
		Overwrite: overwrite,
		Out:       s.out(),
	})
}

func (s *GeneratePackage) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}
