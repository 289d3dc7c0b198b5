package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(name string) (string, string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}

// candidates returns the config files to merge for `name`, lowest
// priority first: <name>.<ext>, then <name>.local.<ext>.
func candidates(name string) []string {
	dir := filepath.Dir(name)
	prefix, ext := splitExt(filepath.Base(name))
	return []string{
		name,
		filepath.Join(dir, fmt.Sprintf("%s.local.%s", prefix, ext)),
	}
}

// ReadConfig reads a json5 configuration file. A sibling
// `<name>.local.<ext>` file, when present, is merged on top of the base
// file so machine-specific overrides stay out of version control.
// Returns os.ErrNotExist when neither file exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	for i, path := range candidates(name) {
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return out, err
		}

		if !found {
			if err := json5.Unmarshal(raw, &out); err != nil {
				return out, fmt.Errorf("parse %s: %w", path, err)
			}
			found = true
			continue
		}

		var override T
		if err := json5.Unmarshal(raw, &override); err != nil {
			return out, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		if i > 0 {
			slog.Info("merging config with local overrides", "local", path)
		}
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively walks up from the working directory to the filesystem
// root looking for a config file matching `name`.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	current, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			parent := filepath.Dir(current)
			if parent == current {
				return zero, os.ErrNotExist
			}
			current = parent
			continue
		}
		if err != nil {
			return zero, err
		}
		return config, nil
	}
}
