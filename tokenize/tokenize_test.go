package tokenize

import (
	"slices"
	"testing"
)

func TestTransform_MixedScripts(t *testing.T) {
	ex := Transform("Hello World . 笑", "Bye 泣")

	wantSrc := []string{"Hello", "World", ".", "笑", SequenceEnd}
	wantTgt := []string{SequenceStart, "Bye", "泣", SequenceEnd}
	if !slices.Equal(ex.SourceTokens, wantSrc) {
		t.Errorf("source tokens = %q, want %q", ex.SourceTokens, wantSrc)
	}
	if !slices.Equal(ex.TargetTokens, wantTgt) {
		t.Errorf("target tokens = %q, want %q", ex.TargetTokens, wantTgt)
	}
	if ex.SourceLen != 5 {
		t.Errorf("source len = %d, want 5", ex.SourceLen)
	}
	if ex.TargetLen != 4 {
		t.Errorf("target len = %d, want 4", ex.TargetLen)
	}
}

func TestTransform_Lengths(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		srcLen int
		tgtLen int
	}{
		{"empty", "", "", 1, 2},
		{"whitespace only", " \t ", "\n", 1, 2},
		{"runs of whitespace", "a   b\tc", "x　y", 4, 4},
		{"no spaces in script", "私は学生です", "これはペンです", 2, 3},
		{"leading and trailing", "  a b  ", " c ", 3, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ex := Transform(tc.source, tc.target)
			if ex.SourceLen != tc.srcLen || len(ex.SourceTokens) != tc.srcLen {
				t.Errorf("source len = %d (%q), want %d", ex.SourceLen, ex.SourceTokens, tc.srcLen)
			}
			if ex.TargetLen != tc.tgtLen || len(ex.TargetTokens) != tc.tgtLen {
				t.Errorf("target len = %d (%q), want %d", ex.TargetLen, ex.TargetTokens, tc.tgtLen)
			}
			if ex.SourceTokens[len(ex.SourceTokens)-1] != SequenceEnd {
				t.Error("source must end with SEQUENCE_END")
			}
			if ex.TargetTokens[0] != SequenceStart || ex.TargetTokens[len(ex.TargetTokens)-1] != SequenceEnd {
				t.Error("target must be wrapped in SEQUENCE_START/SEQUENCE_END")
			}
		})
	}
}

func TestTransform_NoNormalization(t *testing.T) {
	ex := Transform("Hello, WORLD!", "")
	want := []string{"Hello,", "WORLD!", SequenceEnd}
	if !slices.Equal(ex.SourceTokens, want) {
		t.Errorf("got %q, want %q", ex.SourceTokens, want)
	}
}

func TestSplit_DoesNotAliasMarkers(t *testing.T) {
	a := SourceTokens("x")
	b := SourceTokens("y")
	a[0] = "mutated"
	if b[0] != "y" {
		t.Error("token slices must be independent")
	}
}
