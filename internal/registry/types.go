package registry

import "fmt"

// Category names one of the four top-level registry mappings.
type Category string

const (
	CategoryTypes                Category = "types"
	CategoryChildTypes           Category = "childTypes"
	CategorySuffixes             Category = "suffixes"
	CategoryStrictDirectoryNames Category = "strictDirectoryNames"
)

// Categories lists every registry category in serialization order.
var Categories = []Category{
	CategoryTypes,
	CategoryChildTypes,
	CategorySuffixes,
	CategoryStrictDirectoryNames,
}

// ParseCategory returns the Category named s.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown registry category %q (want one of %v)", s, Categories)
}

// Registry maps keys to opaque values in each of the four categories.
// A nil category is treated as empty; registries built by this package
// always carry all four categories.
type Registry struct {
	Types                map[string]any `yaml:"types" json:"types"`                               // type name -> type definition
	ChildTypes           map[string]any `yaml:"childTypes" json:"childTypes"`                     // child type name -> parent type
	Suffixes             map[string]any `yaml:"suffixes" json:"suffixes"`                         // file suffix -> type name
	StrictDirectoryNames map[string]any `yaml:"strictDirectoryNames" json:"strictDirectoryNames"` // directory name -> type name
}

// Empty returns the neutral registry: all four categories present and empty.
func Empty() Registry {
	return Registry{
		Types:                map[string]any{},
		ChildTypes:           map[string]any{},
		Suffixes:             map[string]any{},
		StrictDirectoryNames: map[string]any{},
	}
}

// IsEmpty reports whether every category has no entries.
func (r Registry) IsEmpty() bool {
	for _, c := range Categories {
		if len(r.Get(c)) > 0 {
			return false
		}
	}
	return true
}

// Get returns the mapping for category c, which may be nil.
func (r Registry) Get(c Category) map[string]any {
	switch c {
	case CategoryTypes:
		return r.Types
	case CategoryChildTypes:
		return r.ChildTypes
	case CategorySuffixes:
		return r.Suffixes
	case CategoryStrictDirectoryNames:
		return r.StrictDirectoryNames
	default:
		return nil
	}
}

func (r *Registry) set(c Category, m map[string]any) {
	switch c {
	case CategoryTypes:
		r.Types = m
	case CategoryChildTypes:
		r.ChildTypes = m
	case CategorySuffixes:
		r.Suffixes = m
	case CategoryStrictDirectoryNames:
		r.StrictDirectoryNames = m
	}
}
