package record

import (
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Writer appends records to an underlying writer.
type Writer struct {
	w     io.Writer
	count int
}

// NewWriter creates a Writer. The caller owns w and must close it.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes fields as a Struct record. Values follow structpb.NewValue
// conversion rules (strings, numbers, bools, nested maps and slices).
func (w *Writer) Write(fields map[string]any) error {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("record: encode fields: %w", err)
	}
	return w.WriteStruct(s)
}

// WriteStruct writes one record.
func (w *Writer) WriteStruct(s *structpb.Struct) error {
	payload, err := proto.MarshalOptions{Deterministic: true}.Marshal(s)
	if err != nil {
		return fmt.Errorf("record: marshal: %w", err)
	}
	return w.writeFrame(payload)
}

func (w *Writer) writeFrame(payload []byte) error {
	var header [headerSize]byte
	putHeader(header[:], uint64(len(payload)))

	var footer [footerSize]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(payload))

	for _, b := range [][]byte{header[:], payload, footer[:]} {
		if _, err := w.w.Write(b); err != nil {
			return fmt.Errorf("record: write: %w", err)
		}
	}
	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int { return w.count }
