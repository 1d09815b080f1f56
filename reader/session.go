package reader

import (
	"context"
	stderrors "errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqinput/errors"
	"github.com/kbukum/seqinput/logger"
	"github.com/kbukum/seqinput/observability"
)

// DecodeFunc reads one unit and passes every record to emit, in file order.
// It must return emit's error unchanged when emit fails.
type DecodeFunc func(ctx context.Context, unit Unit, emit func(Record) error) error

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logger.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the reader instruments. nil disables metrics.
func WithMetrics(m *observability.ReaderMetrics) SessionOption {
	return func(s *Session) { s.metrics = m }
}

// PathCheck reports an error when a unit path cannot be read.
type PathCheck func(ctx context.Context, path string) error

// WithPathCheck checks every unit path once, before the first unit is
// read. A failed check is the first and only item the session yields.
func WithPathCheck(check PathCheck) SessionOption {
	return func(s *Session) { s.check = check }
}

// Stats is a snapshot of session progress.
type Stats struct {
	// Records is the number of records handed to the consumer.
	Records int64
	// UnitsCompleted is the number of units read to the end.
	UnitsCompleted int64
	// EpochsStarted is the number of passes begun by the work queue.
	EpochsStarted int64
}

// item carries a record or a read error through the output buffer.
type item struct {
	rec Record
	err error
}

// work is one queued unit tagged with its epoch.
type work struct {
	unit  Unit
	epoch int
}

// Session is one reading session over a fixed list of units. It owns the
// work queue, the reader workers and the bounded output buffer.
//
// Workers start on the first call to Next. A Session is read by a single
// consumer and cannot be restarted; Close releases it early.
type Session struct {
	id      string
	units   []Unit
	decode  DecodeFunc
	check   PathCheck
	opts    Options
	log     *logger.Logger
	metrics *observability.ReaderMetrics

	ctx    context.Context
	cancel context.CancelFunc
	out    chan item

	mu       sync.Mutex
	started  bool
	closing  bool
	failure  error
	reported bool
	done     chan struct{}

	records   atomic.Int64
	completed atomic.Int64
	epochs    atomic.Int64
	// clean is set when every worker exited without cancellation.
	clean atomic.Bool
}

// NewSession prepares a session. No goroutine is started and no file is
// opened until the first Next.
func NewSession(ctx context.Context, units []Unit, decode DecodeFunc, opts Options, options ...SessionOption) (*Session, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if decode == nil {
		return nil, errors.InvalidArgument("decode", "a decode function is required")
	}

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		id:     uuid.NewString(),
		units:  units,
		decode: decode,
		opts:   opts,
		log:    logger.Get(logger.ComponentReader),
		ctx:    sctx,
		cancel: cancel,
		out:    make(chan item, opts.Capacity),
		done:   make(chan struct{}),
	}
	for _, o := range options {
		o(s)
	}
	s.log = s.log.WithFields(logger.Fields(
		logger.FieldSessionID, s.id,
		logger.FieldPipeline, opts.Name,
	))
	return s, nil
}

// ID returns the session id used in logs and spans.
func (s *Session) ID() string { return s.id }

// Options returns the resolved options.
func (s *Session) Options() Options { return s.opts }

// Stats returns a snapshot of session progress.
func (s *Session) Stats() Stats {
	return Stats{
		Records:        s.records.Load(),
		UnitsCompleted: s.completed.Load(),
		EpochsStarted:  s.epochs.Load(),
	}
}

// Next returns the next record. It blocks while the buffer is empty and the
// session is still producing. At the end of the last epoch it returns
// (zero, false, nil). The first read error is returned once it reaches the
// front of the buffer and on every call after that.
//
// ctx bounds only this call: when it expires Next returns ctx.Err() and the
// session keeps running.
func (s *Session) Next(ctx context.Context) (Record, bool, error) {
	var zero Record

	s.mu.Lock()
	switch {
	case s.reported:
		err := s.failure
		s.mu.Unlock()
		return zero, false, err
	case s.closing:
		s.mu.Unlock()
		return zero, false, nil
	case !s.started:
		s.started = true
		s.start()
	}
	s.mu.Unlock()

	select {
	case it, open := <-s.out:
		if !open {
			return zero, false, s.endOfStream()
		}
		if it.err != nil {
			return zero, false, s.report()
		}
		s.records.Add(1)
		return it.rec, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

// Close stops the workers, discards buffered records and waits for every
// goroutine to exit. Errors raised by the teardown itself are swallowed.
// Close is idempotent; Next after Close reports end of stream.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return nil
	}
	s.closing = true
	started := s.started
	s.mu.Unlock()

	s.cancel()
	if !started {
		return nil
	}
	for range s.out {
	}
	<-s.done
	return nil
}

// report marks the first failure as delivered and tears down the workers.
func (s *Session) report() error {
	s.mu.Lock()
	s.reported = true
	err := s.failure
	s.mu.Unlock()
	s.cancel()
	return err
}

// endOfStream resolves a closed output buffer: a failure that never made it
// into the buffer, cancellation of the parent context, or a clean end.
func (s *Session) endOfStream() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		s.reported = true
		return s.failure
	}
	if s.closing || s.clean.Load() {
		return nil
	}
	return s.ctx.Err()
}

// fail records the first read failure. Failures caused by our own
// cancellation are not failures.
func (s *Session) fail(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing || s.failure != nil {
		return false
	}
	if s.ctx.Err() != nil && (stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)) {
		return false
	}
	s.failure = err
	return true
}

// start launches the work queue producer, the workers and the closer.
// Called with s.mu held.
func (s *Session) start() {
	queue := make(chan work)

	s.log.Debug("session started", logger.Fields(
		logger.FieldWorkers, s.opts.NumReaders,
		"units", len(s.units),
		"num_epochs", s.opts.NumEpochs,
		"shuffle", s.opts.Shuffle,
	))
	startedAt := time.Now()

	go s.produce(queue)

	var wg sync.WaitGroup
	for range s.opts.NumReaders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.work(queue)
		}()
	}

	go func() {
		wg.Wait()
		s.clean.Store(s.ctx.Err() == nil)
		close(s.out)
		s.cancel()
		s.finish(time.Since(startedAt))
		close(s.done)
	}()
}

// produce enqueues every unit once per epoch, shuffled per epoch if asked.
func (s *Session) produce(queue chan<- work) {
	defer close(queue)
	if len(s.units) == 0 {
		return
	}
	if err := s.checkPaths(); err != nil {
		if s.fail(err) {
			select {
			case s.out <- item{err: err}:
			case <-s.ctx.Done():
			}
		}
		s.cancel()
		return
	}

	seed := uint64(s.opts.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	order := make([]int, len(s.units))
	for epoch := 1; s.opts.NumEpochs == Unbounded || epoch <= s.opts.NumEpochs; epoch++ {
		for i := range order {
			order[i] = i
		}
		if s.opts.Shuffle {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}
		s.epochs.Add(1)
		s.log.Debug("epoch started", logger.Fields(logger.FieldEpoch, epoch))

		for _, idx := range order {
			select {
			case queue <- work{unit: s.units[idx], epoch: epoch}:
			case <-s.ctx.Done():
				return
			}
		}
	}
}

// checkPaths runs the path check over each distinct unit path.
func (s *Session) checkPaths() error {
	if s.check == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, u := range s.units {
		for _, path := range u.Paths {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			if err := s.check(s.ctx, path); err != nil {
				s.metrics.RecordError(s.ctx, s.opts.Name, string(errors.FromError(err).Code))
				s.log.Error("unit path check failed", logger.Fields(
					logger.FieldPath, path,
					logger.FieldError, err.Error(),
				))
				return err
			}
		}
	}
	return nil
}

// work reads queued units until the queue closes or the session stops.
func (s *Session) work(queue <-chan work) {
	for w := range queue {
		if s.ctx.Err() != nil {
			return
		}
		if err := s.readUnit(w); err != nil {
			if s.fail(err) {
				select {
				case s.out <- item{err: err}:
				case <-s.ctx.Done():
				}
			}
			s.cancel()
			return
		}
	}
}

// readUnit decodes one unit into the output buffer inside a span.
func (s *Session) readUnit(w work) error {
	ctx, span := observability.StartSpan(s.ctx, observability.SpanReaderUnit,
		trace.WithAttributes(observability.UnitAttributes(s.opts.Name, s.id, w.epoch, w.unit.Paths)...),
	)
	startedAt := time.Now()

	var n int64
	emit := func(r Record) error {
		select {
		case s.out <- item{rec: r}:
			n++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	err := s.decode(ctx, w.unit, emit)
	s.metrics.RecordRecords(ctx, s.opts.Name, n)
	span.SetAttributes(attribute.Int64(observability.AttrRecords, n))

	switch {
	case err == nil:
		s.completed.Add(1)
		s.metrics.RecordUnit(ctx, s.opts.Name, "ok", time.Since(startedAt))
		observability.EndSpan(span, nil)
	case s.ctx.Err() != nil:
		s.metrics.RecordUnit(ctx, s.opts.Name, "cancelled", time.Since(startedAt))
		observability.EndSpan(span, nil)
	default:
		s.metrics.RecordUnit(ctx, s.opts.Name, "error", time.Since(startedAt))
		s.metrics.RecordError(ctx, s.opts.Name, string(errors.FromError(err).Code))
		observability.EndSpan(span, err)
		s.log.Error("unit failed", logger.Fields(
			logger.FieldUnit, w.unit.String(),
			logger.FieldEpoch, w.epoch,
			logger.FieldRecords, n,
			logger.FieldError, err.Error(),
		))
	}
	return err
}

// finish logs the outcome once every worker has exited.
func (s *Session) finish(elapsed time.Duration) {
	s.mu.Lock()
	failure, closing := s.failure, s.closing
	s.mu.Unlock()

	fields := logger.MergeWithDuration(logger.Fields(
		"units_completed", s.completed.Load(),
		"epochs", s.epochs.Load(),
	), elapsed)
	switch {
	case failure != nil:
		s.log.Error("session failed", logger.MergeWithError(fields, failure))
	case closing:
		s.log.Debug("session closed", fields)
	default:
		s.log.Info("session finished", fields)
	}
}
