package registry

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/agentx-labs/metaregistry/internal/frozen"
)

//go:embed data/metadataRegistry.json
var baselineBytes []byte

var (
	baselineOnce sync.Once
	baseline     Registry
	baselineErr  error
)

// Baseline returns the registry shipped with the binary. The embedded
// document is decoded once; every call returns an independent copy.
func Baseline() (Registry, error) {
	baselineOnce.Do(func() {
		baseline, baselineErr = Decode(baselineBytes)
		if baselineErr != nil {
			baselineErr = fmt.Errorf("decoding embedded baseline registry: %w", baselineErr)
		}
	})
	if baselineErr != nil {
		return Registry{}, baselineErr
	}
	return Clone(baseline), nil
}

// Clone returns a deep copy of r with all four categories present.
func Clone(r Registry) Registry {
	out := Empty()
	for _, c := range Categories {
		out.set(c, frozen.FreezeMap(r.Get(c)).Thaw())
	}
	return out
}
