package newrelic

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext extracts the transaction started by the nrecho middleware
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts the transaction carried by ctx, if any
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// StartSegment creates a segment, or returns nil without a transaction
func StartSegment(txn *newrelic.Transaction, name string) *newrelic.Segment {
	if txn == nil {
		return nil
	}
	return txn.StartSegment(name)
}

// StartBackground starts a non-web transaction for message handlers and
// detached work such as dispatch rounds. app may be nil.
func StartBackground(ctx context.Context, app *newrelic.Application, name string) (context.Context, func()) {
	if app == nil {
		return ctx, func() {}
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}

// WithSegment runs fn inside a named segment of the transaction in ctx
func WithSegment(ctx context.Context, segmentName string, fn func() error) error {
	if segment := StartSegment(FromContext(ctx), segmentName); segment != nil {
		defer segment.End()
	}
	return fn()
}

// TraceUseCaseWithReturn wraps a use case method that returns a value
func TraceUseCaseWithReturn[T any](ctx context.Context, useCaseName string, fn func(context.Context) (T, error)) (T, error) {
	if segment := StartSegment(FromContext(ctx), useCaseName); segment != nil {
		defer segment.End()
	}
	return fn(ctx)
}

// DatastoreSegment times a Postgres or Redis call against the transaction in ctx
func DatastoreSegment(ctx context.Context, product newrelic.DatastoreProduct, collection, operation string) func() {
	txn := FromContext(ctx)
	if txn == nil {
		return func() {}
	}
	s := &newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    product,
		Collection: collection,
		Operation:  operation,
	}
	return s.End
}

// TraceHandler names the transaction and records handler errors
func TraceHandler(handlerName string, handler echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		txn := FromEchoContext(c)
		if txn != nil {
			txn.SetName(handlerName)
		}

		err := handler(c)
		if err != nil && txn != nil {
			txn.NoticeError(err)
		}
		return err
	}
}
