package inputpipeline

import (
	"context"

	"github.com/kbukum/seqinput/corpus"
	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/observability"
	"github.com/kbukum/seqinput/reader"
	"github.com/kbukum/seqinput/stream"
	"github.com/kbukum/seqinput/tokenize"
)

// InputPipeline turns a corpus into a stream of tokenized examples.
// Implementations hold only resolved configuration and may be shared;
// reading state lives in the session returned by MakeDataProvider.
type InputPipeline interface {
	// Name returns the pipeline class.
	Name() string
	// MakeDataProvider prepares a reading session. No file is touched until
	// the first example is pulled; that pull fails with FILE_NOT_FOUND if any
	// listed file is missing. Cancel ctx or close the session to stop.
	MakeDataProvider(ctx context.Context) (*reader.Session, error)
	// Read returns the examples of a session. The stream can be consumed
	// once; closing its iterator closes the session.
	Read(provider *reader.Session) *stream.Stream[tokenize.Example]
}

// Option customizes how a pipeline reads.
type Option func(*base)

// WithOpener sets the opener used for corpus files.
func WithOpener(o corpus.Opener) Option {
	return func(b *base) {
		if o != nil {
			b.opener = o
		}
	}
}

// WithLogger sets the logger handed to reading sessions.
func WithLogger(l *logger.Logger) Option {
	return func(b *base) { b.log = l }
}

// WithMetrics sets the reader instruments handed to reading sessions.
func WithMetrics(m *observability.ReaderMetrics) Option {
	return func(b *base) { b.metrics = m }
}

// base carries what every pipeline class shares.
type base struct {
	opener  corpus.Opener
	log     *logger.Logger
	metrics *observability.ReaderMetrics
}

func newBase(opts []Option) base {
	b := base{opener: corpus.Default(), metrics: observability.DefaultReaderMetrics()}
	for _, o := range opts {
		o(&b)
	}
	return b
}

func (b base) session(ctx context.Context, name string, units []reader.Unit, decode reader.DecodeFunc, cfg ReadConfig) (*reader.Session, error) {
	opts := []reader.SessionOption{
		reader.WithMetrics(b.metrics),
		reader.WithPathCheck(reader.OpenerCheck(b.opener)),
	}
	if b.log != nil {
		opts = append(opts, reader.WithLogger(b.log))
	}
	return reader.NewSession(ctx, units, decode, cfg.options(name), opts...)
}

// readExamples tokenizes every record a session yields.
func readExamples(provider *reader.Session) *stream.Stream[tokenize.Example] {
	return stream.Map(stream.From[reader.Record](provider),
		func(_ context.Context, r reader.Record) (tokenize.Example, error) {
			return tokenize.Transform(r.Source, r.Target), nil
		})
}

// ReadAll reads every example of a bounded pipeline in one session.
// Pipelines that read forever are refused with INVALID_ARGUMENT.
func ReadAll(ctx context.Context, p InputPipeline) ([]tokenize.Example, error) {
	provider, err := p.MakeDataProvider(ctx)
	if err != nil {
		return nil, err
	}
	if provider.Options().NumEpochs == reader.Unbounded {
		_ = provider.Close()
		return nil, errors.InvalidArgument("num_epochs", "cannot read all examples of an unbounded pipeline")
	}
	return stream.Collect(ctx, p.Read(provider))
}
