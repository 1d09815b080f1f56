// Package tokenize turns aligned source/target text into marker-annotated
// token sequences.
//
// Tokens are whitespace-separated runs; no case folding or punctuation
// splitting is applied, so a script written without spaces stays one token.
package tokenize

import "strings"

// Reserved marker tokens.
const (
	SequenceStart = "SEQUENCE_START"
	SequenceEnd   = "SEQUENCE_END"
)

// Example is one transformed, length-annotated training example.
type Example struct {
	SourceTokens []string `json:"source_tokens"`
	SourceLen    int      `json:"source_len"`
	TargetTokens []string `json:"target_tokens"`
	TargetLen    int      `json:"target_len"`
}

// Split splits text on runs of Unicode whitespace.
func Split(text string) []string {
	return strings.Fields(text)
}

// SourceTokens returns split(text) followed by SequenceEnd.
func SourceTokens(text string) []string {
	words := Split(text)
	tokens := make([]string, 0, len(words)+1)
	tokens = append(tokens, words...)
	return append(tokens, SequenceEnd)
}

// TargetTokens returns SequenceStart, split(text), SequenceEnd.
func TargetTokens(text string) []string {
	words := Split(text)
	tokens := make([]string, 0, len(words)+2)
	tokens = append(tokens, SequenceStart)
	tokens = append(tokens, words...)
	return append(tokens, SequenceEnd)
}

// Transform builds the Example for one aligned pair. It never fails.
func Transform(source, target string) Example {
	src := SourceTokens(source)
	tgt := TargetTokens(target)
	return Example{
		SourceTokens: src,
		SourceLen:    len(src),
		TargetTokens: tgt,
		TargetLen:    len(tgt),
	}
}
