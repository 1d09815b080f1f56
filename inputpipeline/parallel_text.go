package inputpipeline

import (
	"context"
	"fmt"

	"github.com/kbukum/seqinput/reader"
	"github.com/kbukum/seqinput/stream"
	"github.com/kbukum/seqinput/tokenize"
	"github.com/kbukum/seqinput/validation"
)

// ClassParallelText is the registry name of ParallelTextInputPipeline.
const ClassParallelText = "ParallelTextInputPipeline"

// ParallelTextConfig configures a pipeline over aligned text files. Line i
// of SourceFiles[k] pairs with line i of TargetFiles[k].
type ParallelTextConfig struct {
	SourceFiles []string `mapstructure:"source_files" validate:"required,min=1,dive,required"`
	TargetFiles []string `mapstructure:"target_files" validate:"required,min=1,dive,required"`
	ReadConfig  `mapstructure:",squash"`
}

// DefaultParallelTextConfig returns the argument defaults.
func DefaultParallelTextConfig() ParallelTextConfig {
	return ParallelTextConfig{ReadConfig: DefaultReadConfig()}
}

// Validate checks required files and that both lists pair up.
func (c *ParallelTextConfig) Validate() error {
	if err := validateConfig(ClassParallelText, c); err != nil {
		return err
	}
	v := validation.New().Custom(len(c.SourceFiles) == len(c.TargetFiles), "target_files",
		fmt.Sprintf("has %d files but source_files has %d", len(c.TargetFiles), len(c.SourceFiles)))
	if appErr := v.Validate(); appErr != nil {
		return appErr.WithDetail("class", ClassParallelText)
	}
	return nil
}

// ParallelTextInputPipeline reads pairs of aligned plain-text files in
// lock-step, one example per line.
type ParallelTextInputPipeline struct {
	ParallelTextConfig
	base
}

// NewParallelTextInputPipeline validates cfg. No file is touched.
func NewParallelTextInputPipeline(cfg ParallelTextConfig, opts ...Option) (*ParallelTextInputPipeline, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ParallelTextInputPipeline{ParallelTextConfig: cfg, base: newBase(opts)}, nil
}

// ParallelTextFactory builds the pipeline from definition args.
func ParallelTextFactory(opts ...Option) Factory {
	return func(args map[string]any) (InputPipeline, error) {
		cfg := DefaultParallelTextConfig()
		if err := decodeArgs(ClassParallelText, args, &cfg); err != nil {
			return nil, err
		}
		return NewParallelTextInputPipeline(cfg, opts...)
	}
}

// Name implements InputPipeline.
func (p *ParallelTextInputPipeline) Name() string { return ClassParallelText }

// MakeDataProvider implements InputPipeline. Each work unit is one
// source/target pair.
func (p *ParallelTextInputPipeline) MakeDataProvider(ctx context.Context) (*reader.Session, error) {
	units := make([]reader.Unit, len(p.SourceFiles))
	for i := range p.SourceFiles {
		units[i] = reader.Unit{Paths: []string{p.SourceFiles[i], p.TargetFiles[i]}}
	}
	return p.session(ctx, ClassParallelText, units, reader.ParallelTextDecoder(p.opener), p.ReadConfig)
}

// Read implements InputPipeline.
func (p *ParallelTextInputPipeline) Read(provider *reader.Session) *stream.Stream[tokenize.Example] {
	return readExamples(provider)
}
