package inputpipeline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/reader"
	"github.com/kbukum/seqinput/validation"
)

// ReadConfig holds the reading arguments shared by every pipeline class.
type ReadConfig struct {
	// NumEpochs is the number of passes over the data; 0 reads forever.
	NumEpochs  int   `mapstructure:"num_epochs" validate:"gte=0"`
	Shuffle    bool  `mapstructure:"shuffle"`
	NumReaders int   `mapstructure:"num_readers" validate:"gte=1"`
	Capacity   int   `mapstructure:"capacity" validate:"gte=1"`
	Seed       int64 `mapstructure:"seed"`
}

// DefaultReadConfig returns one ordered pass with a single reader.
func DefaultReadConfig() ReadConfig {
	return ReadConfig{
		NumEpochs:  1,
		NumReaders: reader.DefaultNumReaders,
		Capacity:   reader.DefaultCapacity,
	}
}

// ApplyDefaults fills zero-valued reader and buffer sizes.
func (c *ReadConfig) ApplyDefaults() {
	if c.NumReaders == 0 {
		c.NumReaders = reader.DefaultNumReaders
	}
	if c.Capacity == 0 {
		c.Capacity = reader.DefaultCapacity
	}
}

func (c ReadConfig) options(name string) reader.Options {
	return reader.Options{
		Name:       name,
		NumEpochs:  c.NumEpochs,
		Shuffle:    c.Shuffle,
		NumReaders: c.NumReaders,
		Capacity:   c.Capacity,
		Seed:       c.Seed,
	}
}

// decodeArgs decodes args into out, which already holds the defaults.
// Unknown keys and values that cannot be converted fail with
// INVALID_ARGUMENT. Strings are converted to numbers and booleans, and a
// single string to a list, so that overrides given on a command line work.
func decodeArgs(class string, args map[string]any, out any) error {
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		Metadata:         &md,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return errors.Internal(err)
	}
	if err := dec.Decode(args); err != nil {
		return errors.InvalidArgument("args", err.Error()).WithCause(err).WithDetail("class", class)
	}
	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return errors.InvalidArgument(md.Unused[0],
			fmt.Sprintf("unknown argument for %s: %s", class, strings.Join(md.Unused, ", "))).
			WithDetail("class", class).
			WithDetail("unknown", md.Unused)
	}
	return nil
}

// validateConfig checks struct tags on a decoded config.
func validateConfig(class string, cfg any) error {
	if err := validation.Validate(cfg); err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return appErr.WithDetail("class", class)
		}
		return err
	}
	return nil
}
