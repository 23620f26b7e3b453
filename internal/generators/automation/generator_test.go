package automation

import (
	"strings"
	"testing"

	"github.com/hearthkit/hearth/internal/generator"
	"github.com/hearthkit/hearth/internal/yamldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func triggerField(t *testing.T) Field {
	t.Helper()
	node, err := yamldoc.ToNode(yamldoc.NewSeq(yamldoc.NewMap().
		Set("platform", "state").
		Set("entity_id", "binary_sensor.hallway_motion").
		Set("to", "on")))
	require.NoError(t, err)
	return Field{Name: "trigger", Value: node}
}

func TestGenerate_DerivesFilenameFromAlias(t *testing.T) {
	gen := NewGenerator()

	ops, err := gen.Generate(Request{Alias: "Hallway lights when motion"})
	require.NoError(t, err)
	require.Len(t, ops, 1)

	assert.Equal(t, "hallway_lights_when_motion.yaml", ops[0].Path)
}

func TestGenerate_MissingAlias(t *testing.T) {
	gen := NewGenerator()

	tests := []string{"", "   "}
	for _, alias := range tests {
		ops, err := gen.Generate(Request{Alias: alias})
		require.ErrorIs(t, err, generator.ErrMissingName)
		assert.Nil(t, ops, "no operation may be staged without an alias")
	}
}

func TestGenerate_ContentIsValidYAMLWithPayload(t *testing.T) {
	gen := NewGenerator()

	ops, err := gen.Generate(Request{
		Alias:       "Hallway lights when motion",
		Description: "Turn on the hallway lights",
		Fields:      []Field{triggerField(t)},
	})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(ops[0].Content, &doc))

	assert.Equal(t, "Hallway lights when motion", doc["alias"])
	assert.Equal(t, "Turn on the hallway lights", doc["description"])
	assert.Equal(t, "single", doc["mode"], "mode defaults to single")

	trigger, ok := doc["trigger"].([]any)
	require.True(t, ok, "trigger must be a sequence")
	first := trigger[0].(map[string]any)
	assert.Equal(t, "binary_sensor.hallway_motion", first["entity_id"])
}

func TestGenerate_KeyOrder(t *testing.T) {
	gen := NewGenerator()

	action, err := yamldoc.ToNode(yamldoc.NewSeq())
	require.NoError(t, err)

	ops, err := gen.Generate(Request{
		Alias:       "Night mode",
		Description: "desc",
		Fields: []Field{
			triggerField(t),
			{Name: "action", Value: action},
		},
	})
	require.NoError(t, err)

	text := string(ops[0].Content)
	order := []string{"alias:", "description:", "mode:", "trigger:", "action:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, "\n"+key)
		if idx == -1 {
			idx = strings.Index(text, key)
		}
		assert.Greater(t, idx, last, "key %s out of order in:\n%s", key, text)
		last = idx
	}
}

func TestGenerate_CommentHeader(t *testing.T) {
	gen := NewGenerator()

	ops, err := gen.Generate(Request{Alias: "Night mode", Description: "Dim everything"})
	require.NoError(t, err)

	text := string(ops[0].Content)
	assert.True(t, strings.HasPrefix(text, "# Night mode\n# Dim everything\n"), "got:\n%s", text)

	// Header lines must not break YAML parsing.
	var doc map[string]any
	assert.NoError(t, yaml.Unmarshal(ops[0].Content, &doc))
}

func TestGenerate_FilenameOverrideAndMode(t *testing.T) {
	gen := NewGenerator()

	ops, err := gen.Generate(Request{
		Alias:    "Night mode",
		Mode:     "restart",
		Filename: "custom.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom.yaml", ops[0].Path)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(ops[0].Content, &doc))
	assert.Equal(t, "restart", doc["mode"])
}
