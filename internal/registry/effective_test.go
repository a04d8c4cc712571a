package registry

import (
	"encoding/json"
	"testing"

	"github.com/agentx-labs/metaregistry/internal/frozen"
	"github.com/google/go-cmp/cmp"
)

func TestFreezeIsolatesSource(t *testing.T) {
	def := map[string]any{"name": "ApexClass", "suffix": "cls"}
	src := Registry{
		Types:    map[string]any{"apexclass": def},
		Suffixes: map[string]any{"cls": "apexclass"},
	}

	e := Freeze(src)

	def["suffix"] = "changed"
	src.Suffixes["trigger"] = "apextrigger"

	v, ok := e.Lookup(CategoryTypes, "apexclass")
	if !ok {
		t.Fatal("apexclass missing")
	}
	suffix, _ := v.(frozen.Map).Get("suffix")
	if suffix != "cls" {
		t.Errorf("apexclass.suffix = %v, want cls", suffix)
	}
	if e.Suffixes().Has("trigger") {
		t.Error("suffix added to source after freeze is visible")
	}
}

func TestEffectiveThawIsIndependent(t *testing.T) {
	e := Freeze(Registry{Types: map[string]any{"a": map[string]any{"x": 1}}})

	r := e.Thaw()
	r.Types["a"].(map[string]any)["x"] = 2
	r.Types["b"] = 3

	a, _ := e.Types().Get("a")
	if x, _ := a.(frozen.Map).Get("x"); x != 1 {
		t.Errorf("a.x = %v after thawed write, want 1", x)
	}
	if e.Types().Has("b") {
		t.Error("key added to thawed copy is visible")
	}
}

func TestEffectiveLookups(t *testing.T) {
	e := Freeze(Registry{
		ChildTypes:           map[string]any{"customfield": "customobject"},
		Suffixes:             map[string]any{"cls": "apexclass", "odd": 5},
		StrictDirectoryNames: map[string]any{"lwc": "lightningcomponentbundle"},
	})

	if got, ok := e.TypeForSuffix("cls"); !ok || got != "apexclass" {
		t.Errorf("TypeForSuffix(cls) = %q, %v", got, ok)
	}
	if _, ok := e.TypeForSuffix("odd"); ok {
		t.Error("TypeForSuffix should reject non-string values")
	}
	if got, ok := e.TypeForStrictDirectory("lwc"); !ok || got != "lightningcomponentbundle" {
		t.Errorf("TypeForStrictDirectory(lwc) = %q, %v", got, ok)
	}
	if got, ok := e.ParentType("customfield"); !ok || got != "customobject" {
		t.Errorf("ParentType(customfield) = %q, %v", got, ok)
	}
	if e.Types().Len() != 0 {
		t.Errorf("types should be empty, got %d", e.Types().Len())
	}
}

func TestEffectiveMarshalJSON(t *testing.T) {
	e := Freeze(Registry{Suffixes: map[string]any{"cls": "apexclass"}})
	out, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := map[string]any{
		"types":                map[string]any{},
		"childTypes":           map[string]any{},
		"suffixes":             map[string]any{"cls": "apexclass"},
		"strictDirectoryNames": map[string]any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestBaselineDecodes(t *testing.T) {
	b, err := Baseline()
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if len(b.Types) == 0 || len(b.Suffixes) == 0 {
		t.Fatalf("baseline looks empty: %d types, %d suffixes", len(b.Types), len(b.Suffixes))
	}
	if b.Suffixes["cls"] != "apexclass" {
		t.Errorf("suffixes.cls = %v, want apexclass", b.Suffixes["cls"])
	}
}

func TestBaselineReturnsCopies(t *testing.T) {
	first, err := Baseline()
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	first.Suffixes["cls"] = "tampered"
	first.Types["apexclass"].(map[string]any)["name"] = "tampered"

	second, err := Baseline()
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if second.Suffixes["cls"] != "apexclass" {
		t.Errorf("suffixes.cls = %v after tampering with a copy", second.Suffixes["cls"])
	}
	if second.Types["apexclass"].(map[string]any)["name"] != "ApexClass" {
		t.Error("apexclass definition changed after tampering with a copy")
	}
}
