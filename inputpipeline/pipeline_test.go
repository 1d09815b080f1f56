package inputpipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/record"
	"github.com/kbukum/seqinput/stream"
	"github.com/kbukum/seqinput/tokenize"
)

func writeText(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeRecords(t *testing.T, dir, name string, recs ...map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := record.NewWriter(f)
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			t.Fatal(err)
		}
	}
	return path
}

func assertHelloExample(t *testing.T, ex tokenize.Example) {
	t.Helper()
	if ex.SourceLen != 5 || ex.TargetLen != 4 {
		t.Errorf("expected lengths 5/4, got %d/%d", ex.SourceLen, ex.TargetLen)
	}
	if want := []string{"Hello", "World", ".", "笑", tokenize.SequenceEnd}; !slices.Equal(ex.SourceTokens, want) {
		t.Errorf("source tokens %q, want %q", ex.SourceTokens, want)
	}
	if want := []string{tokenize.SequenceStart, "Bye", "泣", tokenize.SequenceEnd}; !slices.Equal(ex.TargetTokens, want) {
		t.Errorf("target tokens %q, want %q", ex.TargetTokens, want)
	}
}

func TestRecordFileInputPipeline(t *testing.T) {
	path := writeRecords(t, t.TempDir(), "data.rec", map[string]any{"source": "Hello World . 笑", "target": "Bye 泣"})

	p, err := NewRecordFileInputPipeline(RecordFileConfig{
		Files:       []string{path},
		SourceField: "source",
		TargetField: "target",
		ReadConfig:  ReadConfig{NumEpochs: 5},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	examples, err := ReadAll(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 5 {
		t.Fatalf("expected 5 examples, got %d", len(examples))
	}
	for _, ex := range examples {
		assertHelloExample(t, ex)
	}
}

func TestParallelTextInputPipeline(t *testing.T) {
	dir := t.TempDir()
	src := writeText(t, dir, "src.txt", "Hello World . 笑")
	tgt := writeText(t, dir, "tgt.txt", "Bye 泣")

	p, err := NewParallelTextInputPipeline(ParallelTextConfig{
		SourceFiles: []string{src},
		TargetFiles: []string{tgt},
		ReadConfig:  ReadConfig{NumEpochs: 5},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	examples, err := ReadAll(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 5 {
		t.Fatalf("expected 5 examples, got %d", len(examples))
	}
	for _, ex := range examples {
		assertHelloExample(t, ex)
	}
}

func TestFromDefinition_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := writeText(t, dir, "src.txt", "a b", "c")
	tgt := writeText(t, dir, "tgt.txt", "x", "y z")

	text := "class: ParallelTextInputPipeline\nargs:\n  source_files: [" + src + "]\n  target_files: [" + tgt + "]\n"
	p, err := MakeInputPipelineFromDef(text, map[string]any{"num_epochs": 2})
	if err != nil {
		t.Fatal(err)
	}
	examples, err := ReadAll(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 4 {
		t.Fatalf("expected 4 examples, got %d", len(examples))
	}
	if examples[1].SourceLen != 2 || examples[1].TargetLen != 4 {
		t.Errorf("unexpected second example %+v", examples[1])
	}
}

func TestReadAll_RefusesUnbounded(t *testing.T) {
	p, err := NewParallelTextInputPipeline(ParallelTextConfig{
		SourceFiles: []string{"a"},
		TargetFiles: []string{"b"},
		ReadConfig:  ReadConfig{NumEpochs: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(context.Background(), p); !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestUnboundedPipeline_TakeAndStop(t *testing.T) {
	dir := t.TempDir()
	src := writeText(t, dir, "src.txt", "a", "b")
	tgt := writeText(t, dir, "tgt.txt", "x", "y")

	p, err := NewParallelTextInputPipeline(ParallelTextConfig{
		SourceFiles: []string{src},
		TargetFiles: []string{tgt},
		ReadConfig:  ReadConfig{NumEpochs: 0, Shuffle: true, NumReaders: 2},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	provider, err := p.MakeDataProvider(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	examples, err := stream.Collect(ctx, stream.Take(p.Read(provider), 25))
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != 25 {
		t.Errorf("expected 25 examples, got %d", len(examples))
	}
	// Collect closed the session.
	if _, ok, err := provider.Next(ctx); ok || err != nil {
		t.Errorf("expected a closed session, got ok=%v err=%v", ok, err)
	}
}

func TestRecordFileInputPipeline_FieldNotFound(t *testing.T) {
	path := writeRecords(t, t.TempDir(), "data.rec", map[string]any{"text": "a", "target": "b"})
	p, err := DefaultRegistry().Create(ClassRecordFile, map[string]any{
		"files":        []string{path},
		"source_field": "source",
		"target_field": "target",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ReadAll(context.Background(), p); !errors.HasCode(err, errors.ErrCodeFieldNotFound) {
		t.Errorf("expected FIELD_NOT_FOUND, got %v", err)
	}
}

func TestMissingLaterFile_FailsFirstPull(t *testing.T) {
	dir := t.TempDir()
	good := writeRecords(t, dir, "good.rec", map[string]any{"source": "a", "target": "b"})
	missing := filepath.Join(dir, "missing.rec")

	p, err := NewRecordFileInputPipeline(RecordFileConfig{
		Files:       []string{good, missing},
		SourceField: "source",
		TargetField: "target",
		ReadConfig:  ReadConfig{NumEpochs: 1},
	}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	provider, err := p.MakeDataProvider(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	iter := p.Read(provider).Iter(context.Background())
	defer iter.Close()

	ex, ok, err := iter.Next(context.Background())
	if !errors.HasCode(err, errors.ErrCodeFileNotFound) || ok {
		t.Fatalf("first pull: expected FILE_NOT_FOUND, got ok=%v err=%v ex=%v", ok, err, ex.SourceTokens)
	}
}
