package stream

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
)

// countingIter yields 0..n-1, then err if set, and records Close calls.
type countingIter struct {
	n, i   int
	err    error
	closed int
}

func (it *countingIter) Next(_ context.Context) (int, bool, error) {
	if it.i >= it.n {
		return 0, false, it.err
	}
	v := it.i
	it.i++
	return v, true, nil
}

func (it *countingIter) Close() error {
	it.closed++
	return nil
}

func TestFrom_ClosesIterator(t *testing.T) {
	iter := &countingIter{n: 2}
	got, err := Collect(context.Background(), From[int](iter))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("got %v", got)
	}
	if iter.closed != 1 {
		t.Errorf("expected Close once, got %d", iter.closed)
	}
}

func TestCollect_Empty(t *testing.T) {
	got, err := Collect(context.Background(), From[int](&countingIter{}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestCollect_SourceError(t *testing.T) {
	boom := errors.New("boom")
	iter := &countingIter{n: 2, err: boom}
	got, err := Collect(context.Background(), From[int](iter))
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if !slices.Equal(got, []int{0, 1}) {
		t.Errorf("expected values before the error, got %v", got)
	}
	if iter.closed != 1 {
		t.Errorf("expected Close once, got %d", iter.closed)
	}
}

func TestMap_TypeConversion(t *testing.T) {
	strs := Map(From[int](&countingIter{n: 3}), func(_ context.Context, n int) (string, error) {
		return fmt.Sprintf("#%d", n), nil
	})
	got, err := Collect(context.Background(), strs)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"#0", "#1", "#2"}) {
		t.Errorf("got %v", got)
	}
}

func TestMap_Error(t *testing.T) {
	fail := Map(From[int](&countingIter{n: 3}), func(_ context.Context, n int) (int, error) {
		if n == 1 {
			return 0, errors.New("bad value")
		}
		return n, nil
	})
	got, err := Collect(context.Background(), fail)
	if err == nil {
		t.Fatal("expected error")
	}
	if !slices.Equal(got, []int{0}) {
		t.Errorf("expected [0] before error, got %v", got)
	}
}

func TestTake(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"fewer than available", 2, []int{0, 1}},
		{"more than available", 10, []int{0, 1, 2}},
		{"zero", 0, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iter := &countingIter{n: 3}
			got, err := Collect(context.Background(), Take(From[int](iter), tc.n))
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if iter.closed != 1 {
				t.Errorf("expected source closed once, got %d", iter.closed)
			}
		})
	}
}

func TestForEach_StopsOnError(t *testing.T) {
	var n int
	iter := &countingIter{n: 5}
	err := ForEach(context.Background(), From[int](iter), func(_ context.Context, v int) error {
		n++
		if v == 1 {
			return errors.New("stop")
		}
		return nil
	})
	if err == nil || n != 2 {
		t.Errorf("expected stop after 2 values, got n=%d err=%v", n, err)
	}
	if iter.closed != 1 {
		t.Errorf("expected Close once, got %d", iter.closed)
	}
}
