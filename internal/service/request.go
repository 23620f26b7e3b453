package service

import (
	"fmt"
	"sort"

	"github.com/hearthkit/hearth/internal/generators/automation"
	"github.com/hearthkit/hearth/internal/generators/pack"
	"github.com/hearthkit/hearth/internal/yamldoc"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// automationRequest mirrors the generate_automation service schema. Control
// fields steer naming and overwrite policy; everything else is payload that
// passes through verbatim into the generated file.
type automationRequest struct {
	Alias       string         `mapstructure:"alias"`
	Description string         `mapstructure:"description"`
	Mode        string         `mapstructure:"mode"`
	Filename    string         `mapstructure:"filename"`
	Overwrite   bool           `mapstructure:"overwrite"`
	Payload     map[string]any `mapstructure:",remain"`
}

// packageRequest mirrors the generate_package service schema.
type packageRequest struct {
	Name             string `mapstructure:"name"`
	Description      string `mapstructure:"description"`
	Overwrite        bool   `mapstructure:"overwrite"`
	IncludeExample   bool   `mapstructure:"include_example"`
	IncludeScripts   bool   `mapstructure:"include_scripts"`
	IncludeScenes    bool   `mapstructure:"include_scenes"`
	IncludeBlueprint bool   `mapstructure:"include_blueprint"`
	BlueprintDomain  string `mapstructure:"blueprint_domain"`
}

// payloadOrder fixes the emission order of well-known payload keys. Go maps
// carry no insertion order, so map-based requests order the payload
// canonically; remaining keys follow alphabetically for determinism.
// Requests decoded from raw YAML keep their true key order instead.
var payloadOrder = []string{"trigger", "condition", "action"}

// decodeAutomation converts service request data into an automation request
// plus its overwrite flag.
func decodeAutomation(data map[string]any) (automation.Request, bool, error) {
	var req automationRequest
	if err := mapstructure.Decode(data, &req); err != nil {
		return automation.Request{}, false, fmt.Errorf("generate_automation: decoding request: %w", err)
	}

	fields, err := orderedFields(req.Payload)
	if err != nil {
		return automation.Request{}, false, fmt.Errorf("generate_automation: %w", err)
	}

	return automation.Request{
		Alias:       req.Alias,
		Description: req.Description,
		Mode:        req.Mode,
		Filename:    req.Filename,
		Fields:      fields,
	}, req.Overwrite, nil
}

// decodePackage converts service request data into package options plus the
// overwrite flag. Defaults match the service schema: example content on,
// optional files off, automation blueprint domain.
func decodePackage(data map[string]any) (pack.Options, bool, error) {
	req := packageRequest{
		IncludeExample:  true,
		BlueprintDomain: pack.DomainAutomation,
	}
	if err := mapstructure.Decode(data, &req); err != nil {
		return pack.Options{}, false, fmt.Errorf("generate_package: decoding request: %w", err)
	}

	return pack.Options{
		Name:             req.Name,
		Description:      req.Description,
		IncludeExample:   req.IncludeExample,
		IncludeScripts:   req.IncludeScripts,
		IncludeScenes:    req.IncludeScenes,
		IncludeBlueprint: req.IncludeBlueprint,
		BlueprintDomain:  req.BlueprintDomain,
	}, req.Overwrite, nil
}

// orderedFields converts the passthrough payload map to ordered fields.
func orderedFields(payload map[string]any) ([]automation.Field, error) {
	if len(payload) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(payload))
	keys := make([]string, 0, len(payload))
	for _, k := range payloadOrder {
		if _, ok := payload[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(payload))
	for k := range payload {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	fields := make([]automation.Field, 0, len(keys))
	for _, k := range keys {
		node, err := yamldoc.ToNode(payload[k])
		if err != nil {
			return nil, fmt.Errorf("payload key %q: %w", k, err)
		}
		fields = append(fields, automation.Field{Name: k, Value: node})
	}
	return fields, nil
}

// ParseAutomationYAML decodes a raw YAML request document into an automation
// request, preserving the payload's key order. This is the entry point the
// CLI uses for --file requests.
func ParseAutomationYAML(raw []byte) (automation.Request, bool, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return automation.Request{}, false, fmt.Errorf("parsing request: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return automation.Request{}, false, fmt.Errorf("request must be a YAML mapping")
	}

	var req automation.Request
	overwrite := false

	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := mapping.Content[i+1]

		var err error
		switch key {
		case "alias":
			err = value.Decode(&req.Alias)
		case "description":
			err = value.Decode(&req.Description)
		case "mode":
			err = value.Decode(&req.Mode)
		case "filename":
			err = value.Decode(&req.Filename)
		case "overwrite":
			err = value.Decode(&overwrite)
		default:
			req.Fields = append(req.Fields, automation.Field{Name: key, Value: value})
		}
		if err != nil {
			return automation.Request{}, false, fmt.Errorf("request field %q: %w", key, err)
		}
	}

	return req, overwrite, nil
}
