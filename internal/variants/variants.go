package variants

import (
	"fmt"
	"log/slog"

	"github.com/agentx-labs/metaregistry/internal/presets"
	"github.com/agentx-labs/metaregistry/internal/project"
	"github.com/agentx-labs/metaregistry/internal/registry"
)

// Builder computes effective registries. It holds only read-only inputs and
// caches nothing, so one Builder may be shared and every call reflects the
// current state of the project on disk.
type Builder struct {
	Baseline registry.Registry
	Projects project.Accessor
	Presets  presets.Store
	Logger   *slog.Logger
}

// New returns a Builder over the embedded baseline registry, project files
// on disk, and the given preset sources.
func New(sources []presets.Source, logger *slog.Logger) (*Builder, error) {
	baseline, err := registry.Baseline()
	if err != nil {
		return nil, err
	}
	return &Builder{
		Baseline: baseline,
		Projects: project.FileAccessor{},
		Presets:  presets.NewSourceStore(sources...),
		Logger:   logger,
	}, nil
}

// EffectiveRegistry computes the effective registry for projectDir using the
// embedded baseline and builtin presets. An empty projectDir means ".".
func EffectiveRegistry(projectDir string) (*registry.Effective, error) {
	if projectDir == "" {
		projectDir = "."
	}
	b, err := New(presets.DefaultSources(), nil)
	if err != nil {
		return nil, err
	}
	return b.Effective(projectDir)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

// LoadVariants returns the project's presets merged in order, with the
// project's direct customizations on top. A directory with no usable
// project yields the neutral registry; a preset that cannot be loaded is
// an error.
func (b *Builder) LoadVariants(projectDir string) (registry.Registry, error) {
	log := b.logger()

	res := b.Projects.Lookup(projectDir)
	if res.Outcome != project.Found {
		log.Debug("no project registry variants", "dir", projectDir, "reason", res.Reason)
		return registry.Empty(), nil
	}

	if n := len(res.Customizations.Types); n > 0 {
		log.Debug("registry customizations found in project", "project", res.Path, "types", n)
	}
	if len(res.Presets) > 0 {
		log.Debug("loading registry presets", "project", res.Path, "presets", res.Presets)
	}

	resolved, err := presets.Resolve(b.Presets, res.Presets)
	if err != nil {
		return registry.Registry{}, fmt.Errorf("resolving presets for %s: %w", res.Path, err)
	}
	return registry.Merge(resolved, res.Customizations), nil
}

// Effective returns the baseline registry with the project's variants
// layered on top, as an immutable registry.
func (b *Builder) Effective(projectDir string) (*registry.Effective, error) {
	layered, err := b.LoadVariants(projectDir)
	if err != nil {
		return nil, err
	}
	return registry.Freeze(registry.Merge(b.Baseline, layered)), nil
}
