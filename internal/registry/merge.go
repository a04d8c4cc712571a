package registry

import "maps"

// Merge combines two registries category by category. Each result category
// is the key-wise union of the inputs; on a key present in both, the value
// from overrides replaces the original value entirely. A category missing
// from either input contributes nothing.
//
// Neither input is modified. The category maps of the result are new, but
// the values they hold are shared with the inputs.
func Merge(original, overrides Registry) Registry {
	var out Registry
	for _, c := range Categories {
		out.set(c, mergeCategory(original.Get(c), overrides.Get(c)))
	}
	return out
}

func mergeCategory(original, overrides map[string]any) map[string]any {
	out := make(map[string]any, len(original)+len(overrides))
	maps.Copy(out, original)
	maps.Copy(out, overrides)
	return out
}
