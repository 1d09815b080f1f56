package reader

import (
	"context"
	"testing"

	"github.com/kbukum/seqinput/corpus"
	"github.com/kbukum/seqinput/errors"
)

func TestDecoders_WrongPathCount(t *testing.T) {
	emit := func(Record) error { return nil }
	tests := []struct {
		name   string
		decode DecodeFunc
		unit   Unit
	}{
		{"parallel text with one path", ParallelTextDecoder(corpus.NewMux()), Unit{Paths: []string{"a"}}},
		{"record file with two paths", RecordFileDecoder(corpus.NewMux(), "s", "t"), Unit{Paths: []string{"a", "b"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.decode(context.Background(), tc.unit, emit)
			if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
		})
	}
}

func TestParallelTextDecoder_EmitErrorStops(t *testing.T) {
	dir := t.TempDir()
	unit := Unit{Paths: []string{writeLines(t, dir, "s", "a", "b"), writeLines(t, dir, "t", "x", "y")}}

	calls := 0
	err := ParallelTextDecoder(corpus.NewMux())(context.Background(), unit, func(Record) error {
		calls++
		return context.Canceled
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("expected emit error after one call, got %v after %d", err, calls)
	}
}

func TestUnknownScheme(t *testing.T) {
	unit := Unit{Paths: []string{"gs://bucket/a.rec"}}
	err := RecordFileDecoder(corpus.NewMux(), "s", "t")(context.Background(), unit, func(Record) error { return nil })
	if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT, got %v", err)
	}
}
