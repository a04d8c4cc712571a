package presets

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// Info describes an available preset.
type Info struct {
	Name     string `json:"name"`
	Source   string `json:"source"` // name of the source that provides it
	Location string `json:"location"`
}

// List returns every preset available across sources, sorted by name.
// A preset provided by several sources is reported once, from the source
// that Load would read it from. Sources whose root does not exist are
// skipped.
func List(sources []Source) ([]Info, error) {
	seen := make(map[string]bool)
	var infos []Info

	for _, src := range sources {
		entries, err := fs.ReadDir(src.FS, ".")
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("listing presets in %s: %w", src.location("."), err)
		}

		// Within a source, .json shadows .yaml just as it does in Load.
		for _, ext := range extensions {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
					continue
				}
				name := strings.TrimSuffix(entry.Name(), ext)
				if seen[name] || validateName(name) != nil {
					continue
				}
				seen[name] = true
				infos = append(infos, Info{
					Name:     name,
					Source:   src.Name,
					Location: src.location(entry.Name()),
				})
			}
		}
	}

	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}
