// Package config resolves the fixed root directories scaffold operations
// write into. Roots are explicit values passed into each component, never
// process-wide state, so tests can redirect writes into a sandbox.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// RootPaths fixes the directory tree scaffold operations may write into.
type RootPaths struct {
	// ConfigRoot is the Home Assistant configuration directory.
	ConfigRoot string
}

// AutomationsDir is where single automation files land.
func (p RootPaths) AutomationsDir() string {
	return filepath.Join(p.ConfigRoot, "automation_helper")
}

// PackagesDir is where package directories land.
func (p RootPaths) PackagesDir() string {
	return filepath.Join(p.ConfigRoot, "packages")
}

// Load resolves the config root. A non-empty flag value wins; otherwise
// hearth.yaml in the working directory is consulted, with HEARTH_CONFIG_ROOT
// as an environment override, defaulting to the working directory itself.
func Load(flagRoot string) (RootPaths, error) {
	if flagRoot != "" {
		return RootPaths{ConfigRoot: flagRoot}, nil
	}

	v := viper.New()
	v.SetConfigName("hearth")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("HEARTH")
	v.AutomaticEnv()
	v.SetDefault("config_root", ".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return RootPaths{}, fmt.Errorf("reading hearth.yaml: %w", err)
		}
		// No config file is fine; env and defaults still apply.
	}

	return RootPaths{ConfigRoot: v.GetString("config_root")}, nil
}
