package record

import (
	"bufio"
	"encoding/binary"
	stderrors "errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kbukum/seqinput/errors"
)

// Reader decodes records sequentially.
type Reader struct {
	r     *bufio.Reader
	index int
	buf   []byte
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReaderSize(r, 64<<10)}
}

// Index returns the 1-based index of the last record returned by Next.
func (r *Reader) Index() int { return r.index }

// Next returns the next record. It returns io.EOF at a clean end of input and
// io.ErrUnexpectedEOF when the input stops inside a record. Checksum and
// decoding failures are INVALID_FORMAT.
func (r *Reader) Next() (*structpb.Struct, error) {
	payload, err := r.nextFrame()
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{}
	if err := proto.Unmarshal(payload, s); err != nil {
		return nil, errors.InvalidFormat("record", fmt.Sprintf("record %d is not a Struct", r.index)).
			WithCause(err).WithDetail("index", r.index)
	}
	return s, nil
}

func (r *Reader) nextFrame() ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r.r, header[:]); err != nil {
		// ReadFull reports io.EOF only when nothing was read.
		return nil, err
	}
	index := r.index + 1

	if binary.LittleEndian.Uint32(header[8:]) != maskedCRC(header[:8]) {
		return nil, corrupt(index, "length checksum mismatch")
	}
	n := binary.LittleEndian.Uint64(header[:8])
	if n > MaxRecordSize {
		return nil, corrupt(index, fmt.Sprintf("length %d exceeds %d", n, MaxRecordSize))
	}

	if cap(r.buf) < int(n)+footerSize {
		r.buf = make([]byte, int(n)+footerSize)
	}
	buf := r.buf[:int(n)+footerSize]
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if stderrors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	payload, footer := buf[:n], buf[n:]
	if binary.LittleEndian.Uint32(footer) != maskedCRC(payload) {
		return nil, corrupt(index, "payload checksum mismatch")
	}
	r.index = index
	return payload, nil
}

func corrupt(index int, reason string) error {
	return errors.InvalidFormat("record", fmt.Sprintf("record %d: %s", index, reason)).
		WithDetail("index", index)
}

// StringField extracts a string-valued field. A missing field is
// FIELD_NOT_FOUND; a field of another kind is INVALID_FORMAT.
func StringField(s *structpb.Struct, name string) (string, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return "", errors.FieldNotFound(name)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", errors.InvalidFormat(name, fmt.Sprintf("field %q is not a string", name)).
			WithDetail("field", name)
	}
	return sv.StringValue, nil
}
