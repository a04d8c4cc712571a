package presets

import (
	"errors"

	"github.com/agentx-labs/metaregistry/internal/registry"
)

// Resolve loads each named preset from store and folds it into an initially
// empty registry, in order, so later presets override earlier ones on key
// collisions. The first preset that fails to load aborts resolution; the
// returned error is always a *LoadError naming that preset.
func Resolve(store Store, names []string) (registry.Registry, error) {
	acc := registry.Empty()
	for _, name := range names {
		preset, err := store.Load(name)
		if err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				le = &LoadError{Name: name, Err: err}
			}
			return registry.Registry{}, le
		}
		acc = registry.Merge(acc, preset)
	}
	return acc, nil
}
