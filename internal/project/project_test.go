package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/metaregistry/internal/registry"
	"github.com/google/go-cmp/cmp"
)

func writeProject(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLookupReadsCustomizationsAndPresets(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeProject(t, tmpDir, "sfdx-project.json", `{
  "packageDirectories": [{"path": "force-app", "default": true}],
  "registryPresets": ["decomposeCustomLabelsBeta", "decomposePermissionSetBeta"],
  "registryCustomizations": {"types": {"b": 2}}
}`)

	res := FileAccessor{}.Lookup(tmpDir)
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, reason %v", res.Outcome, res.Reason)
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
	if diff := cmp.Diff([]string{"decomposeCustomLabelsBeta", "decomposePermissionSetBeta"}, res.Presets); diff != "" {
		t.Errorf("Presets mismatch (-want +got):\n%s", diff)
	}
	if res.Customizations.Types["b"] != 2 {
		t.Errorf("types.b = %v, want 2", res.Customizations.Types["b"])
	}
	if res.Customizations.Suffixes == nil {
		t.Error("absent categories should be empty maps")
	}
}

func TestLookupWalksUpToParent(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.json", `{"registryPresets": ["p1"]}`)

	nested := filepath.Join(tmpDir, "force-app", "main", "default")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	res := FileAccessor{}.Lookup(nested)
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, reason %v", res.Outcome, res.Reason)
	}
	if len(res.Presets) != 1 || res.Presets[0] != "p1" {
		t.Errorf("Presets = %v, want [p1]", res.Presets)
	}
}

func TestLookupYAMLProject(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.yaml", "registryCustomizations:\n  suffixes:\n    foo: apexclass\n")

	res := FileAccessor{}.Lookup(tmpDir)
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, reason %v", res.Outcome, res.Reason)
	}
	if res.Customizations.Suffixes["foo"] != "apexclass" {
		t.Errorf("suffixes.foo = %v", res.Customizations.Suffixes["foo"])
	}
	if len(res.Presets) != 0 {
		t.Errorf("Presets = %v, want none", res.Presets)
	}
}

func TestLookupWithoutRegistryKeys(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.json", `{"packageDirectories": [{"path": "force-app"}]}`)

	res := FileAccessor{}.Lookup(tmpDir)
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, reason %v", res.Outcome, res.Reason)
	}
	if diff := cmp.Diff(registry.Empty(), res.Customizations); diff != "" {
		t.Errorf("Customizations should be neutral (-want +got):\n%s", diff)
	}
}

func TestLookupNotFound(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		isNoPrj bool
	}{
		{
			name:    "no project file",
			setup:   func(t *testing.T, dir string) string { return dir },
			isNoPrj: true,
		},
		{
			name:  "missing directory",
			setup: func(t *testing.T, dir string) string { return filepath.Join(dir, "nope") },
		},
		{
			name: "unparseable project file",
			setup: func(t *testing.T, dir string) string {
				writeProject(t, dir, "sfdx-project.json", `{"registryPresets": [`)
				return dir
			},
		},
		{
			name: "malformed customizations",
			setup: func(t *testing.T, dir string) string {
				writeProject(t, dir, "sfdx-project.json", `{"registryCustomizations": {"types": "apexclass"}}`)
				return dir
			},
		},
		{
			name: "presets not a list",
			setup: func(t *testing.T, dir string) string {
				writeProject(t, dir, "sfdx-project.json", `{"registryPresets": "p1"}`)
				return dir
			},
		},
		{
			name: "preset name not a string",
			setup: func(t *testing.T, dir string) string {
				writeProject(t, dir, "sfdx-project.json", `{"registryPresets": ["p1", 7]}`)
				return dir
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t, t.TempDir())
			res := FileAccessor{}.Lookup(dir)
			if res.Outcome != NotFound {
				t.Fatalf("Outcome = %v, want not found", res.Outcome)
			}
			if res.Reason == nil {
				t.Error("NotFound result should carry a reason")
			}
			if tt.isNoPrj && !errors.Is(res.Reason, ErrNoProject) {
				t.Errorf("Reason = %v, want ErrNoProject", res.Reason)
			}
		})
	}
}

func TestFindFilePrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := writeProject(t, tmpDir, "sfdx-project.json", `{}`)
	writeProject(t, tmpDir, "sfdx-project.yaml", "{}\n")

	got, err := FindFile(tmpDir)
	if err != nil {
		t.Fatalf("FindFile: %v", err)
	}
	if got != jsonPath {
		t.Errorf("FindFile = %q, want %q", got, jsonPath)
	}
}

func TestAddPreset(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.json", `{"sourceApiVersion": "61.0", "registryPresets": ["p1"]}`)

	path, added, err := AddPreset(tmpDir, "p2")
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	if !added {
		t.Error("expected p2 to be added")
	}

	res := FileAccessor{}.Lookup(tmpDir)
	if diff := cmp.Diff([]string{"p1", "p2"}, res.Presets); diff != "" {
		t.Errorf("Presets mismatch (-want +got):\n%s", diff)
	}

	raw, err := readFile(path)
	if err != nil {
		t.Fatalf("readFile: %v", err)
	}
	if raw["sourceApiVersion"] != "61.0" {
		t.Errorf("sourceApiVersion = %v, other keys must survive", raw["sourceApiVersion"])
	}

	_, added, err = AddPreset(tmpDir, "p1")
	if err != nil {
		t.Fatalf("AddPreset duplicate: %v", err)
	}
	if added {
		t.Error("duplicate preset should not be added")
	}
}

func TestAddPresetYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.yaml", "sourceApiVersion: \"61.0\"\n")

	if _, _, err := AddPreset(tmpDir, "p1"); err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	res := FileAccessor{}.Lookup(tmpDir)
	if len(res.Presets) != 1 || res.Presets[0] != "p1" {
		t.Errorf("Presets = %v, want [p1]", res.Presets)
	}
}

func TestAddPresetKeepsJSONLayout(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeProject(t, tmpDir, "sfdx-project.json", `{
  "packageDirectories": [{"path": "force-app", "default": true}],
  "namespace": "",
  "sourceApiVersion": 61.0,
  "registryPresets": ["p1"]
}`)

	if _, _, err := AddPreset(tmpDir, "p2"); err != nil {
		t.Fatalf("AddPreset: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `{
  "packageDirectories": [
    {
      "path": "force-app",
      "default": true
    }
  ],
  "namespace": "",
  "sourceApiVersion": 61.0,
  "registryPresets": [
    "p1",
    "p2"
  ]
}
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("project file mismatch (-want +got):\n%s", diff)
	}
}

func TestAddPresetCreatesList(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"absent", `{"sourceApiVersion": "61.0"}`},
		{"null", `{"sourceApiVersion": "61.0", "registryPresets": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := writeProject(t, tmpDir, "sfdx-project.json", tt.content)

			if _, _, err := AddPreset(tmpDir, "p1"); err != nil {
				t.Fatalf("AddPreset: %v", err)
			}
			res := FileAccessor{}.Lookup(tmpDir)
			if diff := cmp.Diff([]string{"p1"}, res.Presets); diff != "" {
				t.Errorf("Presets mismatch (-want +got):\n%s", diff)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if strings.Index(string(data), "sourceApiVersion") > strings.Index(string(data), "registryPresets") {
				t.Errorf("existing keys should stay first:\n%s", data)
			}
		})
	}
}

func TestAddPresetKeepsYAMLComments(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeProject(t, tmpDir, "sfdx-project.yaml", "# project settings\nsourceApiVersion: \"61.0\"\nnamespace: acme\n")

	if _, _, err := AddPreset(tmpDir, "p1"); err != nil {
		t.Fatalf("AddPreset: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, "# project settings") {
		t.Errorf("comment lost:\n%s", got)
	}
	if strings.Index(got, "sourceApiVersion") > strings.Index(got, "namespace") {
		t.Errorf("key order changed:\n%s", got)
	}
}

func TestLookupNullCustomizationCategory(t *testing.T) {
	tmpDir := t.TempDir()
	writeProject(t, tmpDir, "sfdx-project.json", `{
  "registryPresets": ["p1"],
  "registryCustomizations": {"childTypes": null, "types": {"b": 2}}
}`)

	res := FileAccessor{}.Lookup(tmpDir)
	if res.Outcome != Found {
		t.Fatalf("Outcome = %v, reason %v", res.Outcome, res.Reason)
	}
	if len(res.Presets) != 1 || res.Presets[0] != "p1" {
		t.Errorf("Presets = %v, want [p1]", res.Presets)
	}
	if res.Customizations.ChildTypes == nil || len(res.Customizations.ChildTypes) != 0 {
		t.Errorf("childTypes = %v, want empty map", res.Customizations.ChildTypes)
	}
}

func TestAddPresetWithoutProject(t *testing.T) {
	_, _, err := AddPreset(t.TempDir(), "p1")
	if !errors.Is(err, ErrNoProject) {
		t.Errorf("err = %v, want ErrNoProject", err)
	}
}

func TestOutcomeString(t *testing.T) {
	if Found.String() != "found" || NotFound.String() != "not found" {
		t.Errorf("unexpected strings: %q, %q", Found, NotFound)
	}
}
