package stream

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Stream is a lazy sequence of values backed by an Iterator.
type Stream[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// --- Constructors ---

// From creates a stream over an existing Iterator. The iterator is shared:
// the stream can be consumed once.
func From[T any](iter Iterator[T]) *Stream[T] {
	return &Stream[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// Iter returns the raw Iterator for this stream. The caller must Close() it.
func (s *Stream[T]) Iter(ctx context.Context) Iterator[T] {
	return s.create(ctx)
}

// --- Terminals ---

// Collect pulls every value and returns them as a slice. On error the values
// pulled so far are returned alongside it.
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	iter := s.create(ctx)
	defer iter.Close()
	var result []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// ForEach pulls all values and calls fn for each, stopping at the first error.
func ForEach[T any](ctx context.Context, s *Stream[T], fn func(context.Context, T) error) error {
	iter := s.create(ctx)
	defer iter.Close()
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}
