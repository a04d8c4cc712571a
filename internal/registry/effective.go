package registry

import (
	"encoding/json"

	"github.com/agentx-labs/metaregistry/internal/frozen"
)

// Effective is a read-only registry. It is built by Freeze from a deep copy
// of its source, so it shares no mutable state with any input, and it offers
// no way to modify its contents.
type Effective struct {
	categories map[Category]frozen.Map
}

// Freeze deep-copies r into an Effective registry.
func Freeze(r Registry) *Effective {
	e := &Effective{categories: make(map[Category]frozen.Map, len(Categories))}
	for _, c := range Categories {
		e.categories[c] = frozen.FreezeMap(r.Get(c))
	}
	return e
}

// Category returns the read-only mapping for c.
func (e *Effective) Category(c Category) frozen.Map { return e.categories[c] }

// Types returns type name -> type definition.
func (e *Effective) Types() frozen.Map { return e.categories[CategoryTypes] }

// ChildTypes returns child type name -> parent type.
func (e *Effective) ChildTypes() frozen.Map { return e.categories[CategoryChildTypes] }

// Suffixes returns file suffix -> type name.
func (e *Effective) Suffixes() frozen.Map { return e.categories[CategorySuffixes] }

// StrictDirectoryNames returns directory name -> type name.
func (e *Effective) StrictDirectoryNames() frozen.Map {
	return e.categories[CategoryStrictDirectoryNames]
}

// Lookup returns the value stored under key in category c.
func (e *Effective) Lookup(c Category, key string) (any, bool) {
	return e.categories[c].Get(key)
}

// TypeForSuffix returns the type name registered for a file suffix.
func (e *Effective) TypeForSuffix(suffix string) (string, bool) {
	return e.lookupString(CategorySuffixes, suffix)
}

// TypeForStrictDirectory returns the type name registered for a strict
// directory name.
func (e *Effective) TypeForStrictDirectory(dir string) (string, bool) {
	return e.lookupString(CategoryStrictDirectoryNames, dir)
}

// ParentType returns the parent type of a child type.
func (e *Effective) ParentType(child string) (string, bool) {
	return e.lookupString(CategoryChildTypes, child)
}

func (e *Effective) lookupString(c Category, key string) (string, bool) {
	v, ok := e.categories[c].Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Thaw returns an independent, mutable deep copy.
func (e *Effective) Thaw() Registry {
	var r Registry
	for _, c := range Categories {
		r.set(c, e.categories[c].Thaw())
	}
	return r
}

// MarshalJSON renders the registry as a JSON document.
func (e *Effective) MarshalJSON() ([]byte, error) { return json.Marshal(e.Thaw()) }

// MarshalYAML renders the registry as a YAML document.
func (e *Effective) MarshalYAML() (any, error) { return e.Thaw(), nil }
