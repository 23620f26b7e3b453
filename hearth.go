// Package hearth scaffolds Home Assistant configuration: single automation
// files and package directories (automations, scripts, scenes, blueprints).
package hearth

// Version is the current Hearth release.
const Version = "0.1.0"
