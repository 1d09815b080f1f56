package reader

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/seqinput/corpus"
	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/record"
)

// maxLineSize bounds one line of a parallel text file.
const maxLineSize = 64 << 20

// ParallelTextDecoder reads a unit of two aligned text files (source, target)
// in lock-step. Line i of the source pairs with line i of the target. A pair
// whose files end at different lines fails with MISALIGNED_FILES after the
// last complete pair has been emitted.
func ParallelTextDecoder(opener corpus.Opener) DecodeFunc {
	return func(ctx context.Context, unit Unit, emit func(Record) error) error {
		if len(unit.Paths) != 2 {
			return errors.InvalidArgument("unit", fmt.Sprintf("parallel text unit needs 2 paths, got %d", len(unit.Paths)))
		}
		srcPath, tgtPath := unit.Paths[0], unit.Paths[1]

		src, err := opener.Open(ctx, srcPath)
		if err != nil {
			return err
		}
		defer src.Close()
		tgt, err := opener.Open(ctx, tgtPath)
		if err != nil {
			return err
		}
		defer tgt.Close()

		srcScan, tgtScan := newLineScanner(src), newLineScanner(tgt)
		for line := 1; ; line++ {
			srcOK, tgtOK := srcScan.Scan(), tgtScan.Scan()
			if err := firstScanErr(srcPath, srcScan, tgtPath, tgtScan); err != nil {
				return err
			}
			if !srcOK && !tgtOK {
				return nil
			}
			if srcOK != tgtOK {
				return errors.MisalignedFiles(srcPath, tgtPath, line)
			}
			err := emit(Record{
				Source: trimCR(srcScan.Text()),
				Target: trimCR(tgtScan.Text()),
				File:   srcPath,
				Index:  line,
			})
			if err != nil {
				return err
			}
		}
	}
}

// RecordFileDecoder reads a unit of one record file and extracts the two
// named string fields from every record.
func RecordFileDecoder(opener corpus.Opener, sourceField, targetField string) DecodeFunc {
	return func(ctx context.Context, unit Unit, emit func(Record) error) error {
		if len(unit.Paths) != 1 {
			return errors.InvalidArgument("unit", fmt.Sprintf("record file unit needs 1 path, got %d", len(unit.Paths)))
		}
		path := unit.Paths[0]

		f, err := opener.Open(ctx, path)
		if err != nil {
			return err
		}
		defer f.Close()

		r := record.NewReader(f)
		for {
			rec, err := r.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return recordErr(path, r.Index()+1, err)
			}
			src, err := record.StringField(rec, sourceField)
			if err != nil {
				return recordErr(path, r.Index(), err)
			}
			tgt, err := record.StringField(rec, targetField)
			if err != nil {
				return recordErr(path, r.Index(), err)
			}
			if err := emit(Record{Source: src, Target: tgt, File: path, Index: r.Index()}); err != nil {
				return err
			}
		}
	}
}

// OpenerCheck checks unit paths through opener.
func OpenerCheck(opener corpus.Opener) PathCheck {
	return func(ctx context.Context, path string) error {
		return corpus.Check(ctx, opener, path)
	}
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return sc
}

func firstScanErr(srcPath string, src *bufio.Scanner, tgtPath string, tgt *bufio.Scanner) error {
	if err := src.Err(); err != nil {
		return scanErr(srcPath, err)
	}
	if err := tgt.Err(); err != nil {
		return scanErr(tgtPath, err)
	}
	return nil
}

func scanErr(path string, err error) error {
	if stderrors.Is(err, bufio.ErrTooLong) {
		return errors.InvalidFormat(path, fmt.Sprintf("line longer than %d bytes", maxLineSize)).WithCause(err)
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Internal(err).WithDetail("path", path)
}

func recordErr(path string, index int, err error) error {
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.InvalidFormat(path, fmt.Sprintf("record %d is truncated", index)).
			WithCause(err).WithDetail("index", index)
	}
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.WithDetails(map[string]any{"path": path, "index": index})
	}
	return errors.Internal(err).WithDetails(map[string]any{"path": path, "index": index})
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}
