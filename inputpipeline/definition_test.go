package inputpipeline

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/kbukum/seqinput/errors"
)

const parallelDef = `
class: ParallelTextInputPipeline
args:
  source_files: ["file1"]
  target_files: ["file2"]
  num_epochs: 1
  shuffle: True
`

func TestMakeInputPipelineFromDef_WithoutOverrides(t *testing.T) {
	p, err := MakeInputPipelineFromDef(parallelDef, nil)
	if err != nil {
		t.Fatal(err)
	}
	pt, ok := p.(*ParallelTextInputPipeline)
	if !ok {
		t.Fatalf("expected *ParallelTextInputPipeline, got %T", p)
	}
	if !slices.Equal(pt.SourceFiles, []string{"file1"}) || !slices.Equal(pt.TargetFiles, []string{"file2"}) {
		t.Errorf("unexpected files %v %v", pt.SourceFiles, pt.TargetFiles)
	}
	if pt.NumEpochs != 1 || !pt.Shuffle {
		t.Errorf("expected num_epochs=1 shuffle=true, got %d %v", pt.NumEpochs, pt.Shuffle)
	}
}

func TestMakeInputPipelineFromDef_WithOverrides(t *testing.T) {
	p, err := MakeInputPipelineFromDef(parallelDef, map[string]any{"num_epochs": 5, "shuffle": false})
	if err != nil {
		t.Fatal(err)
	}
	pt := p.(*ParallelTextInputPipeline)
	if !slices.Equal(pt.SourceFiles, []string{"file1"}) || !slices.Equal(pt.TargetFiles, []string{"file2"}) {
		t.Errorf("unexpected files %v %v", pt.SourceFiles, pt.TargetFiles)
	}
	if pt.NumEpochs != 5 || pt.Shuffle {
		t.Errorf("expected num_epochs=5 shuffle=false, got %d %v", pt.NumEpochs, pt.Shuffle)
	}
}

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition(parallelDef)
	if err != nil {
		t.Fatal(err)
	}
	if def.Class != ClassParallelText {
		t.Errorf("unexpected class %q", def.Class)
	}
	if def.Args["num_epochs"] != 1 || def.Args["shuffle"] != true {
		t.Errorf("unexpected args %v", def.Args)
	}
}

func TestParseDefinition_NoArgs(t *testing.T) {
	for _, text := range []string{"class: Foo", "class: Foo\nargs:\n", "class: Foo\nargs: {}"} {
		def, err := ParseDefinition(text)
		if err != nil {
			t.Fatalf("%q: %v", text, err)
		}
		if def.Class != "Foo" || len(def.Args) != 0 {
			t.Errorf("%q: got %+v", text, def)
		}
	}
}

func TestParseDefinition_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"invalid yaml", "class: [unclosed"},
		{"not a mapping", "- a\n- b"},
		{"missing class", "args: {}"},
		{"empty class", "class: ''"},
		{"numeric class", "class: 42"},
		{"list class", "class: [a]"},
		{"args is a list", "class: Foo\nargs: [1, 2]"},
		{"args is a scalar", "class: Foo\nargs: nope"},
		{"unexpected key", "class: Foo\nargs: {}\nextra: 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDefinition(tc.text)
			if !errors.HasCode(err, errors.ErrCodeMalformedDefinition) {
				t.Errorf("expected MALFORMED_DEFINITION, got %v", err)
			}
		})
	}
}

func TestWithOverrides_DoesNotMutate(t *testing.T) {
	def := Definition{Class: "Foo", Args: map[string]any{"a": 1, "b": 2}}
	merged := def.WithOverrides(map[string]any{"b": 3, "c": 4})

	if merged.Args["a"] != 1 || merged.Args["b"] != 3 || merged.Args["c"] != 4 {
		t.Errorf("unexpected merge %v", merged.Args)
	}
	if def.Args["b"] != 2 || len(def.Args) != 2 {
		t.Errorf("receiver was mutated: %v", def.Args)
	}
	if len(def.WithOverrides(nil).Args) != 2 {
		t.Error("nil overrides must keep args")
	}
}

func TestLoadDefinitionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yml")
	if err := os.WriteFile(path, []byte(parallelDef), 0o600); err != nil {
		t.Fatal(err)
	}
	def, err := LoadDefinitionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if def.Class != ClassParallelText {
		t.Errorf("unexpected class %q", def.Class)
	}

	if _, err := LoadDefinitionFile(filepath.Join(dir, "missing.yml")); !errors.HasCode(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}
