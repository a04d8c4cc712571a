package presets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/metaregistry/internal/registry"
)

//go:embed builtin/*.json
var builtinFS embed.FS

// extensions is the fallback order for preset files within a source.
var extensions = []string{".json", ".yaml"}

var (
	// ErrNotFound is the cause of a LoadError when no source has the preset.
	ErrNotFound = errors.New("preset not found")
	// ErrInvalidName is the cause of a LoadError for names that cannot be
	// used as file names.
	ErrInvalidName = errors.New("invalid preset name")
)

// LoadError reports a preset that could not be loaded.
type LoadError struct {
	Name      string
	Locations []string // files that were tried, in order
	Err       error
}

func (e *LoadError) Error() string {
	if len(e.Locations) == 0 {
		return fmt.Sprintf("preset %q could not be loaded: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("preset %q could not be loaded from %s: %v",
		e.Name, strings.Join(e.Locations, ", "), e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store supplies preset registries by name.
type Store interface {
	Load(name string) (registry.Registry, error)
}

// StoreFunc adapts a function to the Store interface.
type StoreFunc func(name string) (registry.Registry, error)

// Load calls f(name).
func (f StoreFunc) Load(name string) (registry.Registry, error) { return f(name) }

// Source is a location to search for preset files.
type Source struct {
	Name string // e.g., "builtin", "user"
	Root string // shown in error messages; empty for sources with no disk path
	FS   fs.FS
}

// location returns a human-readable path for a file within the source.
func (s Source) location(file string) string {
	if s.Root != "" {
		return filepath.Join(s.Root, file)
	}
	return s.Name + ":" + file
}

// Builtin returns the source of presets embedded in the binary.
func Builtin() Source {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// fs.Sub only fails for invalid paths.
		panic(err)
	}
	return Source{Name: "builtin", FS: sub}
}

// DirSource returns a source that reads presets from a directory on disk.
func DirSource(name, dir string) Source {
	return Source{Name: name, Root: dir, FS: os.DirFS(dir)}
}

// DefaultSources returns the user preset directories, in the given order,
// followed by the builtin presets.
func DefaultSources(dirs ...string) []Source {
	sources := make([]Source, 0, len(dirs)+1)
	for _, dir := range dirs {
		sources = append(sources, DirSource("user", dir))
	}
	return append(sources, Builtin())
}

// SourceStore searches sources in priority order (first source = highest
// priority) for <name>.json, then <name>.yaml.
type SourceStore struct {
	Sources []Source
}

// NewSourceStore returns a store over the given sources.
func NewSourceStore(sources ...Source) *SourceStore {
	return &SourceStore{Sources: sources}
}

// Load returns the preset registry called name. Failures are *LoadError.
func (s *SourceStore) Load(name string) (registry.Registry, error) {
	if err := validateName(name); err != nil {
		return registry.Registry{}, &LoadError{Name: name, Err: err}
	}

	var tried []string
	for _, src := range s.Sources {
		for _, ext := range extensions {
			file := name + ext
			loc := src.location(file)
			tried = append(tried, loc)

			data, err := fs.ReadFile(src.FS, file)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return registry.Registry{}, &LoadError{Name: name, Locations: []string{loc}, Err: err}
			}

			r, err := registry.Decode(data)
			if err != nil {
				return registry.Registry{}, &LoadError{Name: name, Locations: []string{loc}, Err: err}
			}
			return r, nil
		}
	}

	return registry.Registry{}, &LoadError{Name: name, Locations: tried, Err: ErrNotFound}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || !fs.ValidPath(name) || name != path.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
