// Package observability wires OpenTelemetry tracing and metrics into the
// record reader.
//
// Nothing is exported unless InitTracer / InitMeter install SDK providers;
// until then the global no-op providers absorb every span and measurement.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("seqinput"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanReaderUnit)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("seqinput"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewReaderMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordUnit(ctx, "ParallelTextInputPipeline", "ok", elapsed)
package observability
