// Package automation scaffolds a single Home Assistant automation file.
package automation

import (
	"fmt"
	"strings"

	"github.com/hearthkit/hearth/internal/generator"
	"github.com/hearthkit/hearth/internal/slug"
	"github.com/hearthkit/hearth/internal/yamldoc"
	"gopkg.in/yaml.v3"
)

// DefaultMode is Home Assistant's default automation run mode.
const DefaultMode = "single"

// Field is one passthrough payload entry. Order matters: fields are emitted
// in the order they arrived in the request.
type Field struct {
	Name  string
	Value *yaml.Node
}

// Request describes one generate_automation call. Alias is required; the
// trigger/condition/action payload passes through verbatim in Fields.
type Request struct {
	Alias       string
	Description string
	Mode        string
	Filename    string // optional override for the derived <slug>.yaml
	Fields      []Field
}

// Generator builds the scaffold operation for an automation request.
type Generator struct{}

// NewGenerator creates a new automation generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate stages one file: <slug>.yaml under the automations root. The
// document keys come out as alias, description, mode, then the payload
// fields in their original order.
func (g *Generator) Generate(req Request) ([]generator.Op, error) {
	alias := strings.TrimSpace(req.Alias)
	if alias == "" {
		return nil, fmt.Errorf("generate_automation: %w", generator.ErrMissingName)
	}

	filename := req.Filename
	if filename == "" {
		filename = slug.Derive(alias) + ".yaml"
	}

	doc := yamldoc.NewMap().Set("alias", alias)
	if req.Description != "" {
		doc.Set("description", req.Description)
	}
	mode := req.Mode
	if mode == "" {
		mode = DefaultMode
	}
	doc.Set("mode", mode)
	for _, f := range req.Fields {
		doc.Set(f.Name, f.Value)
	}

	body, err := yamldoc.Format(doc)
	if err != nil {
		return nil, fmt.Errorf("generate_automation: %w", err)
	}

	content := header(alias, req.Description) + body

	return []generator.Op{{Path: filename, Content: []byte(content)}}, nil
}

// header builds the literal comment lines prefixed to the document.
func header(alias, description string) string {
	var b strings.Builder
	b.WriteString("# " + alias + "\n")
	if description != "" {
		b.WriteString("# " + description + "\n")
	}
	return b.String()
}
