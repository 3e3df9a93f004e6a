package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"github.com/xx-template/xx-cli/internal/branding"
	"github.com/xx-template/xx-cli/internal/catalog"
	"github.com/xx-template/xx-cli/internal/ui"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Known configuration keys.
const (
	KeyCloneMethod = "clone.method"
	KeyCloneDepth  = "clone.depth"
	KeyColor       = "color"
)

// Color modes accepted by KeyColor.
const (
	ColorAuto   = ui.ColorAuto
	ColorAlways = ui.ColorAlways
	ColorNever  = ui.ColorNever
)

var defaultValues = map[string]any{
	KeyCloneMethod: catalog.MethodGoGit,
	KeyCloneDepth:  1,
	KeyColor:       ColorAuto,
}

var v = newViper()

func newViper() *viper.Viper {
	nv := viper.New()
	for key, val := range defaultValues {
		nv.SetDefault(key, val)
	}
	return nv
}

// Dir returns the path to the config directory. <PREFIX>_HOME overrides the
// default of ~/.xx-cli.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("HOME")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load resets the settings and reads them from the config file and
// environment. A missing config file is not an error.
func Load() error {
	v = newViper()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Keys returns the known configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaultValues))
	for key := range defaultValues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// CloneMethod returns the configured clone backend.
func CloneMethod() string {
	return v.GetString(KeyCloneMethod)
}

// CloneDepth returns the configured shallow clone depth. Zero means full history.
func CloneDepth() int {
	return v.GetInt(KeyCloneDepth)
}

// Color returns the configured color mode.
func Color() string {
	return v.GetString(KeyColor)
}

// Set validates and writes a config key-value pair to the config file. Only
// keys already present in the file and the new key are persisted; environment
// overrides and defaults are not written back.
func Set(key, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	fv := viper.New()
	fv.SetConfigFile(configFile)
	fv.SetConfigType(fileType)
	if err := fv.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading config file %s: %w", configFile, err)
	}

	if key == KeyCloneDepth {
		depth, _ := strconv.Atoi(value)
		fv.Set(key, depth)
	} else {
		fv.Set(key, value)
	}

	if err := fv.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	v.Set(key, fv.Get(key))
	return nil
}

func validate(key, value string) error {
	switch key {
	case KeyCloneMethod:
		if !slices.Contains([]string{catalog.MethodGoGit, catalog.MethodExec}, value) {
			return fmt.Errorf("invalid %s %q: must be %q or %q", key, value, catalog.MethodGoGit, catalog.MethodExec)
		}
	case KeyCloneDepth:
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 0 {
			return fmt.Errorf("invalid %s %q: must be a non-negative integer", key, value)
		}
	case KeyColor:
		if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, value) {
			return fmt.Errorf("invalid %s %q: must be one of auto, always, never", key, value)
		}
	default:
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}
