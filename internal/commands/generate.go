package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hearthkit/hearth/internal/config"
	"github.com/hearthkit/hearth/internal/generator"
	"github.com/hearthkit/hearth/internal/generators/automation"
	"github.com/hearthkit/hearth/internal/generators/pack"
	"github.com/hearthkit/hearth/internal/output"
	"github.com/hearthkit/hearth/internal/service"
	"github.com/spf13/cobra"
)

// GenerateCmd creates the 'generate' command with its scaffold subcommands.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scaffold configuration files",
	}

	cmd.AddCommand(automationCmd())
	cmd.AddCommand(packageCmd())

	return cmd
}

// conflictFlags holds the overwrite-policy flags shared by both subcommands.
type conflictFlags struct {
	overwrite   bool
	skip        bool
	interactive bool
	dryRun      bool
}

func (f *conflictFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&f.skip, "skip", false, "Skip existing files (the default policy)")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "Ask what to do for each existing file")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Show what would be written without creating files")
}

func automationCmd() *cobra.Command {
	var flags conflictFlags
	var file, description, mode, filename string

	cmd := &cobra.Command{
		Use:   "automation [alias]",
		Short: "Scaffold a single automation file",
		Long: `Scaffold one automation YAML file under <config_root>/automation_helper/.

The filename is derived from the alias: "Hallway lights when motion"
becomes hallway_lights_when_motion.yaml. Pass a request file to include
triggers, conditions, and actions; its keys are written in the order they
appear.

Examples:
  hearth generate automation "Hallway lights when motion"
  hearth generate automation --file request.yaml
  hearth generate automation --file request.yaml --overwrite`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := automation.Request{}
			overwrite := false

			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("reading request file: %w", err)
				}
				req, overwrite, err = service.ParseAutomationYAML(raw)
				if err != nil {
					return err
				}
			}

			// Flags and the positional alias override the request file.
			if len(args) > 0 {
				req.Alias = args[0]
			}
			if description != "" {
				req.Description = description
			}
			if mode != "" {
				req.Mode = mode
			}
			if filename != "" {
				req.Filename = filename
			}
			if flags.overwrite {
				overwrite = true
			}

			ops, err := automation.NewGenerator().Generate(req)
			if err != nil {
				return err
			}

			paths, err := rootPaths(cmd)
			if err != nil {
				return err
			}
			w, err := generator.NewWriter(paths.AutomationsDir())
			if err != nil {
				return err
			}
			output.Verbose("Writing into " + w.Root())

			results, err := execute(cmd, w, ops, overwrite, flags)
			if err != nil {
				return err
			}

			summarize(results, flags.dryRun)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML request file with the automation payload")
	cmd.Flags().StringVar(&description, "description", "", "Automation description")
	cmd.Flags().StringVar(&mode, "mode", "", "Automation run mode (default: single)")
	cmd.Flags().StringVar(&filename, "filename", "", "Override the derived file name")

	return cmd
}

func packageCmd() *cobra.Command {
	var flags conflictFlags
	var opts pack.Options

	cmd := &cobra.Command{
		Use:   "package <name>",
		Short: "Scaffold a package directory",
		Long: `Scaffold a package directory under <config_root>/packages/<slug>/.

Every package gets automations.yaml and a README.md. Scripts, scenes, and a
blueprint stub are added on request. Each file is written independently:
files that already exist are skipped, the rest are still created.

Examples:
  hearth generate package "Hallway lighting"
  hearth generate package hallway_lighting --include-scripts --include-scenes
  hearth generate package hallway_lighting --include-blueprint --blueprint-domain script`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]

			dir, ops, err := pack.NewGenerator().Generate(opts)
			if err != nil {
				return err
			}

			paths, err := rootPaths(cmd)
			if err != nil {
				return err
			}
			w, err := generator.NewWriter(paths.PackagesDir())
			if err != nil {
				return err
			}

			output.Verbose("Package directory: " + filepath.Join(w.Root(), dir))

			// The whole operation aborts if the package directory itself
			// cannot be created.
			if !flags.dryRun {
				if err := w.EnsureDir(dir); err != nil {
					return err
				}
			}

			results, err := execute(cmd, w, ops, flags.overwrite, flags)
			if err != nil {
				return err
			}

			summarize(results, flags.dryRun)
			if !flags.dryRun {
				output.Info("Load the package by enabling packages: in configuration.yaml")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&opts.Description, "description", "", "Package description for the README and examples")
	cmd.Flags().BoolVar(&opts.IncludeExample, "include-example", true, "Seed files with example entries")
	cmd.Flags().BoolVar(&opts.IncludeScripts, "include-scripts", false, "Also generate scripts.yaml")
	cmd.Flags().BoolVar(&opts.IncludeScenes, "include-scenes", false, "Also generate scenes.yaml")
	cmd.Flags().BoolVar(&opts.IncludeBlueprint, "include-blueprint", false, "Also generate a blueprint stub")
	cmd.Flags().StringVar(&opts.BlueprintDomain, "blueprint-domain", pack.DomainAutomation, "Blueprint domain: automation or script")

	return cmd
}

// rootPaths resolves the config root from the persistent flag, hearth.yaml,
// or the environment.
func rootPaths(cmd *cobra.Command) (config.RootPaths, error) {
	flagRoot, err := cmd.Flags().GetString("config-root")
	if err != nil {
		return config.RootPaths{}, err
	}
	return config.Load(flagRoot)
}

// execute runs the staged operations with the conflict policy the flags ask
// for.
func execute(cmd *cobra.Command, w *generator.Writer, ops []generator.Op, overwrite bool, flags conflictFlags) ([]generator.Result, error) {
	resolver, err := generator.NewResolver(overwrite, flags.skip, flags.interactive)
	if err != nil {
		return nil, err
	}

	return generator.Execute(cmd.Context(), w, ops, generator.ExecuteOptions{
		DryRun:    flags.dryRun,
		Overwrite: overwrite,
		Resolver:  resolver,
		Out:       cmd.OutOrStdout(),
	})
}

// summarize reports the aggregate outcome of a scaffold run.
func summarize(results []generator.Result, dryRun bool) {
	if dryRun {
		output.Info("Dry-run complete. Run without --dry-run to create files.")
		return
	}

	written, skipped := 0, 0
	for _, r := range results {
		if r.Outcome == generator.SkippedExists {
			skipped++
		} else {
			written++
		}
	}

	if written > 0 {
		output.Success(fmt.Sprintf("Wrote %d file(s)", written))
	}
	if skipped > 0 {
		output.Warn(fmt.Sprintf("Skipped %d existing file(s)", skipped))
		output.Step("Use --overwrite to replace them, or --interactive to decide per file")
	}
}
