// Package reader turns a static list of files into a bounded, optionally
// shuffled, epoch-limited stream of raw records.
//
// A Session owns one reading session:
//
//   - a producer enqueues every Unit once per epoch (shuffled per epoch when
//     asked) onto an unbuffered work queue;
//   - NumReaders workers take units off the queue, decode them with a
//     DecodeFunc and push records into the output buffer of size Capacity;
//   - when the last epoch has been dispatched and every worker has returned,
//     the buffer is closed and Next reports end of stream.
//
// A full buffer blocks the workers and an empty one blocks the consumer.
// Records keep file order within a unit; across units and workers there is
// no ordering, so deterministic output needs NumReaders 1 and no shuffle.
//
//	s, err := reader.NewSession(ctx, units, reader.ParallelTextDecoder(corpus.Default()), reader.Options{NumEpochs: 1})
//	defer s.Close()
//	for {
//	    rec, ok, err := s.Next(ctx)
//	    ...
//	}
package reader
