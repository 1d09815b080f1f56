package reader

import (
	"strings"

	"github.com/kbukum/seqinput/validation"
)

// Unbounded as NumEpochs reads forever, until the consumer stops pulling.
const Unbounded = 0

// Defaults applied to zero-valued options.
const (
	DefaultNumReaders = 1
	DefaultCapacity   = 256
)

// Record is one aligned source/target text pair before tokenization.
type Record struct {
	Source string
	Target string
	// File is the file (or source file of a pair) the record came from.
	File string
	// Index is the 1-based line or record number within File.
	Index int
}

// Unit is one unit of work: a single record file, or an aligned pair of
// text files read in lock-step.
type Unit struct {
	Paths []string
}

// String joins the unit's paths for logs.
func (u Unit) String() string {
	return strings.Join(u.Paths, " + ")
}

// Options configures one reading session.
type Options struct {
	// Name labels logs, spans and metrics, usually the pipeline class.
	Name string
	// NumEpochs is the number of passes over the units; Unbounded reads forever.
	NumEpochs int
	// Shuffle permutes the unit order once per epoch.
	Shuffle bool
	// NumReaders is the number of concurrent reader workers.
	NumReaders int
	// Capacity bounds the output buffer.
	Capacity int
	// Seed seeds the shuffle; 0 picks a time-based seed.
	Seed int64
}

// ApplyDefaults fills zero-valued worker and buffer sizes.
func (o *Options) ApplyDefaults() {
	if o.NumReaders == 0 {
		o.NumReaders = DefaultNumReaders
	}
	if o.Capacity == 0 {
		o.Capacity = DefaultCapacity
	}
}

// Validate reports out-of-range options as INVALID_ARGUMENT.
func (o *Options) Validate() error {
	v := validation.New().
		Min("num_epochs", o.NumEpochs, Unbounded).
		Min("num_readers", o.NumReaders, 1).
		Min("capacity", o.Capacity, 1)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
