// Package pack scaffolds a Home Assistant package directory: a folder under
// packages/ grouping automations, scripts, scenes, a README, and optionally
// a blueprint stub, all under one feature name.
package pack

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hearthkit/hearth/internal/generator"
	"github.com/hearthkit/hearth/internal/slug"
	"github.com/hearthkit/hearth/internal/yamldoc"
)

// Blueprint domains recognized by Home Assistant.
const (
	DomainAutomation = "automation"
	DomainScript     = "script"
)

// Options controls which files a package scaffold contains.
type Options struct {
	Name             string
	Description      string
	IncludeExample   bool // seed each file with a starter entry
	IncludeScripts   bool
	IncludeScenes    bool
	IncludeBlueprint bool
	BlueprintDomain  string // automation (default) or script
}

// Generator builds the scaffold operations for a package request.
type Generator struct{}

// NewGenerator creates a new package generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate derives the package slug and stages every file the options ask
// for. automations.yaml and README.md are always present. The returned dir
// is the package directory relative to the packages root; callers create it
// up front so a permission failure aborts before any file write.
func (g *Generator) Generate(opts Options) (dir string, ops []generator.Op, err error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return "", nil, fmt.Errorf("generate_package: %w", generator.ErrMissingName)
	}

	domain := opts.BlueprintDomain
	if domain == "" {
		domain = DomainAutomation
	}
	if opts.IncludeBlueprint && domain != DomainAutomation && domain != DomainScript {
		return "", nil, fmt.Errorf("generate_package: blueprint_domain must be %q or %q, got %q",
			DomainAutomation, DomainScript, domain)
	}

	dir = slug.Derive(name)
	title := slug.Humanize(name)

	add := func(rel string, content []byte) {
		ops = append(ops, generator.Op{Path: filepath.Join(dir, rel), Content: content})
	}

	automations, err := buildAutomations(title, opts.Description, opts.IncludeExample)
	if err != nil {
		return "", nil, err
	}
	add("automations.yaml", automations)

	if opts.IncludeScripts {
		scripts, err := buildScripts(title, opts.IncludeExample)
		if err != nil {
			return "", nil, err
		}
		add("scripts.yaml", scripts)
	}

	if opts.IncludeScenes {
		scenes, err := buildScenes(title, opts.IncludeExample)
		if err != nil {
			return "", nil, err
		}
		add("scenes.yaml", scenes)
	}

	if opts.IncludeBlueprint {
		blueprint, err := buildBlueprint(title, opts.Description, domain)
		if err != nil {
			return "", nil, err
		}
		add(filepath.Join("blueprints", domain, dir+".yaml"), blueprint)
	}

	add("README.md", buildReadme(title, opts.Description, opts))

	return dir, ops, nil
}

// buildAutomations creates the package automations.yaml, optionally seeded
// with an example automation.
func buildAutomations(title, description string, includeExample bool) ([]byte, error) {
	entries := yamldoc.NewSeq()
	if includeExample {
		entries.Add(yamldoc.NewMap().
			Set("alias", title+" example").
			Set("description", defaultText(description,
				"Replace the trigger and actions with your real automation logic.")).
			Set("trigger", yamldoc.NewSeq(yamldoc.NewMap().
				Set("platform", "state").
				Set("entity_id", "binary_sensor.example").
				Set("to", "on"))).
			Set("condition", yamldoc.NewSeq()).
			Set("action", yamldoc.NewSeq(logbookAction(title, "Replace this with useful actions."))).
			Set("mode", "single"))
	}

	body, err := yamldoc.Format(yamldoc.NewMap().Set("automation", entries))
	if err != nil {
		return nil, err
	}
	return []byte("# Automations for the " + title + " package\n" + body), nil
}

// buildScripts creates a stub scripts.yaml for the package.
func buildScripts(title string, includeExample bool) ([]byte, error) {
	scripts := yamldoc.NewMap()
	if includeExample {
		scripts.Set(slug.Derive(title+" helper"), yamldoc.NewMap().
			Set("alias", title+" helper").
			Set("sequence", yamldoc.NewSeq(logbookAction(title,
				"Replace this script with your real sequence."))))
	}

	body, err := yamldoc.Format(yamldoc.NewMap().Set("script", scripts))
	if err != nil {
		return nil, err
	}
	return []byte("# Scripts for the " + title + " package\n" + body), nil
}

// buildScenes creates a stub scenes.yaml for the package.
func buildScenes(title string, includeExample bool) ([]byte, error) {
	scenes := yamldoc.NewSeq()
	if includeExample {
		scenes.Add(yamldoc.NewMap().
			Set("name", title+" scene").
			Set("icon", "mdi:palette").
			Set("entities", yamldoc.NewMap().
				Set("light.example", yamldoc.NewMap().
					Set("state", "on").
					Set("brightness", 200))))
	}

	body, err := yamldoc.Format(yamldoc.NewMap().Set("scene", scenes))
	if err != nil {
		return nil, err
	}
	return []byte("# Scenes for the " + title + " package\n" + body), nil
}

// buildBlueprint creates a minimal blueprint stub. Automation blueprints get
// trigger/action placeholders wired to the target_entity input; script
// blueprints get a sequence instead.
func buildBlueprint(title, description, domain string) ([]byte, error) {
	meta := yamldoc.NewMap().
		Set("name", title+" helper blueprint").
		Set("description", defaultText(description,
			"Adapt this blueprint to create reusable automations or scripts.")).
		Set("domain", domain).
		Set("input", yamldoc.NewMap().
			Set("target_entity", yamldoc.NewMap().
				Set("name", "Target entity").
				Set("description", "Entity that should receive the action.").
				Set("selector", yamldoc.NewMap().Set("entity", yamldoc.NewMap())))).
		Set("source_url", "https://github.com/hearthkit/hearth")

	doc := yamldoc.NewMap().Set("blueprint", meta)

	if domain == DomainAutomation {
		doc.Set("trigger", yamldoc.NewSeq(yamldoc.NewMap().
			Set("platform", "state").
			Set("entity_id", yamldoc.Tagged("!input", "target_entity")).
			Set("to", "on")))
		doc.Set("action", yamldoc.NewSeq(logbookAction(title,
			"Blueprint triggered, replace with useful actions.")))
	} else {
		doc.Set("sequence", yamldoc.NewSeq(logbookAction(title,
			"Blueprint executed, replace with useful steps.")))
	}

	body, err := yamldoc.Format(doc)
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

// buildReadme describes the package contents and how to load them.
func buildReadme(title, description string, opts Options) []byte {
	var b strings.Builder

	b.WriteString("# " + title + " package\n\n")
	b.WriteString(defaultText(description, "Describe the goal of this automation package.") + "\n\n")

	b.WriteString("## Contents\n\n")
	b.WriteString("- `automations.yaml`\n")
	if opts.IncludeScripts {
		b.WriteString("- `scripts.yaml`\n")
	}
	if opts.IncludeScenes {
		b.WriteString("- `scenes.yaml`\n")
	}
	if opts.IncludeBlueprint {
		b.WriteString("- `blueprints/` automation or script blueprint\n")
	}

	b.WriteString("\n## Getting started\n\n")
	b.WriteString("1. Adjust the example entries to match your devices.\n")
	b.WriteString("2. Load the package by enabling `packages:` in `configuration.yaml`.\n")
	b.WriteString("3. Restart Home Assistant and verify the automations appear as expected.\n")

	return []byte(b.String())
}

// logbookAction is the placeholder action seeded into example entries.
func logbookAction(name, message string) *yamldoc.Map {
	return yamldoc.NewMap().
		Set("service", "logbook.log").
		Set("data", yamldoc.NewMap().
			Set("name", name).
			Set("message", message))
}

func defaultText(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
