package inputpipeline

import (
	"context"

	"github.com/kbukum/seqinput/reader"
	"github.com/kbukum/seqinput/stream"
	"github.com/kbukum/seqinput/tokenize"
)

// Registry names of RecordFileInputPipeline.
const (
	ClassTFRecord   = "TFRecordInputPipeline"
	ClassRecordFile = "RecordFileInputPipeline"
)

// RecordFileConfig configures a pipeline over record files whose records
// carry the source and target text in two named string fields. Both field
// names are required.
type RecordFileConfig struct {
	Files       []string `mapstructure:"files" validate:"required,min=1,dive,required"`
	SourceField string   `mapstructure:"source_field" validate:"required"`
	TargetField string   `mapstructure:"target_field" validate:"required"`
	ReadConfig  `mapstructure:",squash"`
}

// DefaultRecordFileConfig returns the argument defaults. The field names
// have none.
func DefaultRecordFileConfig() RecordFileConfig {
	return RecordFileConfig{ReadConfig: DefaultReadConfig()}
}

// Validate checks required arguments.
func (c *RecordFileConfig) Validate() error {
	return validateConfig(ClassTFRecord, c)
}

// RecordFileInputPipeline reads record files, one example per record.
type RecordFileInputPipeline struct {
	RecordFileConfig
	base
}

// NewRecordFileInputPipeline validates cfg. No file is touched.
func NewRecordFileInputPipeline(cfg RecordFileConfig, opts ...Option) (*RecordFileInputPipeline, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RecordFileInputPipeline{RecordFileConfig: cfg, base: newBase(opts)}, nil
}

// RecordFileFactory builds the pipeline from definition args.
func RecordFileFactory(opts ...Option) Factory {
	return func(args map[string]any) (InputPipeline, error) {
		cfg := DefaultRecordFileConfig()
		if err := decodeArgs(ClassTFRecord, args, &cfg); err != nil {
			return nil, err
		}
		return NewRecordFileInputPipeline(cfg, opts...)
	}
}

// Name implements InputPipeline.
func (p *RecordFileInputPipeline) Name() string { return ClassTFRecord }

// MakeDataProvider implements InputPipeline. Each work unit is one file.
func (p *RecordFileInputPipeline) MakeDataProvider(ctx context.Context) (*reader.Session, error) {
	units := make([]reader.Unit, len(p.Files))
	for i, f := range p.Files {
		units[i] = reader.Unit{Paths: []string{f}}
	}
	decode := reader.RecordFileDecoder(p.opener, p.SourceField, p.TargetField)
	return p.session(ctx, ClassTFRecord, units, decode, p.ReadConfig)
}

// Read implements InputPipeline.
func (p *RecordFileInputPipeline) Read(provider *reader.Session) *stream.Stream[tokenize.Example] {
	return readExamples(provider)
}
