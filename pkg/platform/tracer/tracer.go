// Package tracer provides a lightweight tracing abstraction for the registries.
//
// Services depend on the Tracer interface rather than on OpenTelemetry directly;
// they default to NewNoop and production wires NewOTel.
package tracer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	//
	// Example:
	//   ctx, span := t.Start(ctx, tracer.SpanCreditRepayment,
	//       tracer.String(tracer.AttrPrincipal, borrower.Hex()),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans. It is OpenTelemetry's
// own type, so spans take attributes without conversion.
type Attribute = attribute.KeyValue

func String(key, value string) Attribute { return attribute.String(key, value) }

func Bool(key string, value bool) Attribute { return attribute.Bool(key, value) }

func Int64(key string, value int64) Attribute { return attribute.Int64(key, value) }

// Span names.
const (
	SpanCreditLoan       = "credit.record_loan"
	SpanCreditRepayment  = "credit.record_repayment"
	SpanCreditDefault    = "credit.record_default"
	SpanCreditParameters = "credit.set_parameter"
	SpanCreditProfile    = "credit.get_profile"
	SpanBadgeMint        = "badge.mint"
	SpanBadgeEvolve      = "badge.evolve"
	SpanBadgeHealth      = "badge.set_weakened"
	SpanEventRelay       = "events.relay"
)

// Attribute keys.
const (
	AttrPrincipal = "principal"
	AttrBadgeID   = "badge.id"
	AttrTier      = "credit.tier"
	AttrUpgraded  = "credit.upgraded"
	AttrStage     = "badge.stage"
	AttrBatchSize = "relay.batch_size"
	AttrCacheHit  = "cache.hit"

	AttrRequestID = "request.id"
	AttrCaller    = "caller"
	AttrErrorCode = "error.code"
)

// Event names.
const (
	EventTierUpgraded  = "credit.tier_upgraded"
	EventBadgeWeakened = "badge.weakened"
	EventCacheEvicted  = "cache.evicted"
)
