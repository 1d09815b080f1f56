package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/inputpipeline"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/record"
)

// Field names written when none are given.
const (
	defaultSourceField = "source"
	defaultTargetField = "target"
)

type convertSummary struct {
	Out     string `json:"out"`
	Records int    `json:"records"`
}

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		common      commonFlags
		sources     []string
		targets     []string
		out         string
		sourceField string
		targetField string
	)
	fs := newFlagSet("convert", stderr)
	fs.StringSliceVar(&sources, "source", nil, "source text file (repeatable, pairs with --target)")
	fs.StringSliceVar(&targets, "target", nil, "target text file (repeatable)")
	fs.StringVar(&out, "out", "", "record file to write")
	fs.StringVar(&sourceField, "source-field", defaultSourceField, "record field for the source text")
	fs.StringVar(&targetField, "target-field", defaultTargetField, "record field for the target text")
	common.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if out == "" {
		return fail(stderr, errors.InvalidArgument("out", "is required"))
	}
	if sourceField == "" || targetField == "" || sourceField == targetField {
		return fail(stderr, errors.InvalidArgument("source_field", "source and target fields must be distinct and non-empty"))
	}

	a, err := setup(ctx, common, stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer a.close(ctx)

	p, err := a.registry.Create(inputpipeline.ClassParallelText, map[string]any{
		"source_files": sources,
		"target_files": targets,
		"num_epochs":   1,
	})
	if err != nil {
		return fail(stderr, err)
	}

	n, err := convert(ctx, p, out, sourceField, targetField)
	if err != nil {
		return fail(stderr, err)
	}
	a.log.Info("convert finished", logger.Fields(logger.FieldPath, out, logger.FieldRecords, n))
	_ = json.NewEncoder(stdout).Encode(convertSummary{Out: out, Records: n})
	return exitOK
}

// convert writes every raw record of p's single epoch to a record file at
// path. A failed conversion removes the partial file.
func convert(ctx context.Context, p inputpipeline.InputPipeline, path, sourceField, targetField string) (n int, err error) {
	provider, err := p.MakeDataProvider(ctx)
	if err != nil {
		return 0, err
	}
	defer provider.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Internal(err).WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Internal(cerr).WithDetail("path", path)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	buf := bufio.NewWriter(f)
	w := record.NewWriter(buf)
	for {
		rec, ok, err := provider.Next(ctx)
		if err != nil {
			return w.Count(), err
		}
		if !ok {
			break
		}
		if err := w.Write(map[string]any{sourceField: rec.Source, targetField: rec.Target}); err != nil {
			return w.Count(), errors.Internal(err).WithDetail("path", path)
		}
	}
	if err := buf.Flush(); err != nil {
		return w.Count(), errors.Internal(err).WithDetail("path", path)
	}
	return w.Count(), nil
}
