package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/inputpipeline"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/reader"
	"github.com/kbukum/seqinput/stream"
	"github.com/kbukum/seqinput/tokenize"
)

func runInspect(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		common     commonFlags
		definition string
		sets       []string
		limit      int
	)
	fs := newFlagSet("inspect", stderr)
	fs.StringVar(&definition, "definition", "", "pipeline definition file (default: pipeline.definition from config)")
	fs.StringArrayVar(&sets, "set", nil, "override a pipeline argument, as key=value (repeatable)")
	fs.IntVar(&limit, "limit", 10, "stop after N examples; 0 reads everything (bounded pipelines only)")
	common.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	a, err := setup(ctx, common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer a.close(ctx)

	if definition == "" {
		definition = a.cfg.Pipeline.Definition
	}
	if definition == "" {
		return fail(stderr, errors.InvalidArgument("definition", "no --definition given and pipeline.definition is not configured"))
	}
	if limit < 0 {
		return fail(stderr, errors.InvalidArgument("limit", "must not be negative"))
	}

	overrides := maps.Clone(a.cfg.Pipeline.Overrides)
	if overrides == nil {
		overrides = map[string]any{}
	}
	for _, s := range sets {
		key, value, err := parseSet(s)
		if err != nil {
			return fail(stderr, err)
		}
		overrides[key] = value
	}

	def, err := inputpipeline.LoadDefinitionFile(definition)
	if err != nil {
		return fail(stderr, err)
	}
	p, err := a.registry.Build(def.WithOverrides(overrides))
	if err != nil {
		return fail(stderr, err)
	}
	a.log.Debug("pipeline built", logger.Fields(logger.FieldPipeline, p.Name(), logger.FieldPath, definition))

	n, err := writeExamples(ctx, p, limit, stdout)
	if err != nil {
		return fail(stderr, err)
	}
	a.log.Info("inspect finished", logger.Fields(logger.FieldPipeline, p.Name(), logger.FieldRecords, n))
	return exitOK
}

// writeExamples prints up to limit examples (all when limit is 0) as JSON
// lines and returns how many were written.
func writeExamples(ctx context.Context, p inputpipeline.InputPipeline, limit int, w io.Writer) (int, error) {
	provider, err := p.MakeDataProvider(ctx)
	if err != nil {
		return 0, err
	}
	examples := p.Read(provider)
	if limit > 0 {
		examples = stream.Take(examples, limit)
	} else if provider.Options().NumEpochs == reader.Unbounded {
		_ = provider.Close()
		return 0, errors.InvalidArgument("limit", "an unbounded pipeline needs --limit")
	}

	out := bufio.NewWriter(w)
	enc := json.NewEncoder(out)
	n := 0
	err = stream.ForEach(ctx, examples, func(_ context.Context, ex tokenize.Example) error {
		n++
		return enc.Encode(ex)
	})
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	return n, err
}

// parseSet splits key=value. The value is read as YAML so numbers,
// booleans and [lists] keep their types.
func parseSet(s string) (string, any, error) {
	key, raw, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, errors.InvalidArgument("set", fmt.Sprintf("expected key=value, got %q", s))
	}
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return "", nil, errors.InvalidArgument("set", fmt.Sprintf("invalid value for %s: %v", key, err)).WithCause(err)
	}
	if value == nil {
		value = raw
	}
	return key, value, nil
}
