package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/metaregistry/internal/registry"
	"go.yaml.in/yaml/v3"
)

const (
	customizationsKey = "registryCustomizations"
	presetsKey        = "registryPresets"
)

// FileNames is the lookup order for project files within one directory.
var FileNames = []string{"sfdx-project.json", "sfdx-project.yaml"}

// ErrNoProject is the NotFound reason when no project file exists in the
// directory or any of its parents.
var ErrNoProject = errors.New("no project file found")

// Outcome tags a lookup result.
type Outcome int

const (
	NotFound Outcome = iota
	Found
)

func (o Outcome) String() string {
	if o == Found {
		return "found"
	}
	return "not found"
}

// Result is the outcome of looking up a project. When Outcome is NotFound,
// Reason says why and the other fields are zero.
type Result struct {
	Outcome        Outcome
	Path           string            // project file that was read
	Customizations registry.Registry // always has all categories when Found
	Presets        []string          // preset names in declared order
	Reason         error
}

// Accessor reads project-level registry settings for a directory.
type Accessor interface {
	Lookup(dir string) Result
}

// AccessorFunc adapts a function to the Accessor interface.
type AccessorFunc func(dir string) Result

// Lookup calls f(dir).
func (f AccessorFunc) Lookup(dir string) Result { return f(dir) }

// FileAccessor finds the project file on disk.
type FileAccessor struct{}

// Lookup finds the project file for dir and reads its registry settings.
func (FileAccessor) Lookup(dir string) Result {
	path, err := FindFile(dir)
	if err != nil {
		return notFound(err)
	}

	raw, err := readFile(path)
	if err != nil {
		return notFound(err)
	}

	customizations, err := registry.FromValue(raw[customizationsKey])
	if err != nil {
		return notFound(fmt.Errorf("reading %s in %s: %w", customizationsKey, path, err))
	}

	presets, err := presetNames(raw[presetsKey])
	if err != nil {
		return notFound(fmt.Errorf("reading %s in %s: %w", presetsKey, path, err))
	}

	return Result{
		Outcome:        Found,
		Path:           path,
		Customizations: customizations,
		Presets:        presets,
	}
}

func notFound(reason error) Result {
	return Result{Outcome: NotFound, Reason: reason}
}

// FindFile returns the project file in dir or the nearest parent that has
// one.
func FindFile(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("accessing project directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project directory %s is not a directory", abs)
	}

	for d := abs; ; {
		for _, name := range FileNames {
			p := filepath.Join(d, name)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p, nil
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrNoProject, abs)
		}
		d = parent
	}
}

// readFile decodes a project file into a generic document. JSON project
// files are read with the YAML decoder, which accepts JSON.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

func presetNames(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of preset names, got %T", v)
	}
	names := make([]string, 0, len(list))
	for i, item := range list {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("preset at index %d is %T, want string", i, item)
		}
		names = append(names, name)
	}
	return names, nil
}
