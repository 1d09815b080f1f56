// Package stream provides lazy, pull-based streams.
//
// No work happens until values are pulled via Next, Collect or ForEach. Each
// stage pulls from the previous stage on demand, so a slow consumer throttles
// every stage behind it without explicit flow control.
//
// End of stream is (zero, false, nil). Errors are returned from Next and are
// distinct from the end of stream.
//
// # Usage
//
//	src := stream.From[reader.Record](session)
//	examples := stream.Map(src, func(_ context.Context, r reader.Record) (tokenize.Example, error) {
//	    return tokenize.Transform(r.Source, r.Target), nil
//	})
//	first, err := stream.Collect(ctx, stream.Take(examples, 10))
package stream
