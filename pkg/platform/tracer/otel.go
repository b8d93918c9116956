package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	dErrors "credipet/pkg/domain-errors"
	"credipet/pkg/requestcontext"
)

// OTelTracer adapts an OpenTelemetry tracer to the Tracer interface.
type OTelTracer struct {
	tracer trace.Tracer
}

type OTelOption func(*OTelTracer)

// WithOTelTracer injects a pre-configured OpenTelemetry tracer.
func WithOTelTracer(t trace.Tracer) OTelOption {
	return func(o *OTelTracer) {
		o.tracer = t
	}
}

// NewOTel uses the global provider under the "credipet" instrumentation
// name unless a tracer is injected.
func NewOTel(opts ...OTelOption) *OTelTracer {
	t := &OTelTracer{}
	for _, opt := range opts {
		opt(t)
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer("credipet")
	}
	return t
}

// NewNoop records nothing. Services fall back to it when no tracer is configured.
func NewNoop() *OTelTracer {
	return NewOTel(WithOTelTracer(noop.NewTracerProvider().Tracer("")))
}

// Start opens a span tagged with the request id and calling principal
// found in ctx, followed by attrs.
func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name,
		trace.WithAttributes(requestAttributes(ctx)...),
		trace.WithAttributes(attrs...),
	)
	return ctx, &otelSpan{span: span}
}

func requestAttributes(ctx context.Context) []attribute.KeyValue {
	var out []attribute.KeyValue
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		out = append(out, attribute.String(AttrRequestID, requestID))
	}
	if caller := requestcontext.Caller(ctx); !caller.IsZero() {
		out = append(out, attribute.String(AttrCaller, caller.Hex()))
	}
	return out
}

type otelSpan struct {
	span trace.Span
}

// End tags the span with err's domain code. Rejections such as forbidden
// callers or backward evolution leave the span status alone; only
// internal failures and timeouts mark it as an error.
func (s *otelSpan) End(err error) {
	if err != nil {
		code := dErrors.CodeOf(err)
		s.span.SetAttributes(attribute.String(AttrErrorCode, string(code)))
		if code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		}
	}
	s.span.End()
}

func (s *otelSpan) SetAttributes(attrs ...Attribute) {
	s.span.SetAttributes(attrs...)
}

func (s *otelSpan) AddEvent(name string, attrs ...Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

var (
	_ Tracer = (*OTelTracer)(nil)
	_ Span   = (*otelSpan)(nil)
)
