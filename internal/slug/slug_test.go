package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "hallway", "hallway"},
		{"spaces", "Hallway lights when motion", "hallway_lights_when_motion"},
		{"mixed separators", "night -- mode / ON", "night_mode_on"},
		{"digits kept", "scene 2b", "scene_2b"},
		{"accents folded", "Héllo Wörld", "hello_world"},
		{"leading trailing junk", "  ?!hall?!  ", "hall"},
		{"underscores collapse", "a___b", "a_b"},
		{"already a slug", "hallway_lighting", "hallway_lighting"},
		{"empty", "", Fallback},
		{"only junk", "?!£$%", Fallback},
		{"path traversal", "../../etc/passwd", "etc_passwd"},
		{"null byte", "a\x00b", "a_b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.in))
		})
	}
}

func TestDerive_Properties(t *testing.T) {
	inputs := []string{
		"Hallway lights when motion",
		"  ?!hall?!  ",
		"../../etc/passwd",
		"ÜBER grüße",
		"日本語のみ",
		"",
	}

	for _, in := range inputs {
		got := Derive(in)

		assert.NotEmpty(t, got, "Derive(%q)", in)
		assert.Equal(t, got, Derive(got), "Derive should be idempotent for %q", in)
		assert.False(t, strings.HasPrefix(got, "_"), "Derive(%q) = %q", in, got)
		assert.False(t, strings.HasSuffix(got, "_"), "Derive(%q) = %q", in, got)
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_'
			assert.True(t, valid, "Derive(%q) contains %q", in, r)
		}
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hallway_lighting", "Hallway Lighting"},
		{"night-mode", "Night Mode"},
		{"hallway lighting", "Hallway Lighting"},
		{"UPPER_CASE", "Upper Case"},
		{"", "Automation"},
		{"___", "Automation"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Humanize(tt.in), "Humanize(%q)", tt.in)
	}
}
