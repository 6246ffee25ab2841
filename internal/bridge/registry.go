// Package bridge dispatches named operations to in-process handlers.
//
// It stands between the view and the backend: the view names an operation,
// the registry finds the handler, runs it under a trace span and folds every
// kind of failure into a single error kind, ErrCallFailed.
package bridge

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "vaultshell/bridge"

// Handler implements a named operation. It takes no arguments and resolves
// to text.
type Handler func(ctx context.Context) (string, error)

// Invoker issues named operations. Implemented by *Registry; views depend on
// this interface so tests can substitute their own.
type Invoker interface {
	Invoke(ctx context.Context, op string) (string, error)
}

var _ Invoker = (*Registry)(nil)

// Registry maps operation identifiers to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	tracer   trace.Tracer
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracerProvider traces calls through tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Registry) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewRegistry returns an empty registry, traced through the global provider
// unless an option says otherwise.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds h to op. It panics on an empty name, a nil handler or a
// duplicate registration.
func (r *Registry) Register(op string, h Handler) {
	if op == "" {
		panic("bridge: empty operation name")
	}
	if h == nil {
		panic(fmt.Sprintf("bridge: nil handler for %q", op))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.handlers[op]; dup {
		panic(fmt.Sprintf("bridge: operation %q registered twice", op))
	}
	r.handlers[op] = h
}

// Operations lists registered operation identifiers in sorted order.
func (r *Registry) Operations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]string, 0, len(r.handlers))
	for op := range r.handlers {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Invoke runs the handler for op. Any failure, including a missing handler or
// a handler panic, is returned as a *CallError.
func (r *Registry) Invoke(ctx context.Context, op string) (text string, err error) {
	ctx, span := r.tracer.Start(ctx, "bridge.invoke",
		trace.WithAttributes(attribute.String("bridge.operation", op)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "call failed")
		}
		span.End()
	}()

	r.mu.RLock()
	h, ok := r.handlers[op]
	r.mu.RUnlock()
	if !ok {
		return "", &CallError{Op: op, Err: ErrUnknownOperation}
	}

	return r.call(ctx, op, h)
}

func (r *Registry) call(ctx context.Context, op string, h Handler) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = &CallError{Op: op, Err: fmt.Errorf("handler panic: %v", p)}
		}
	}()

	text, err = h(ctx)
	if err != nil {
		return "", &CallError{Op: op, Err: err}
	}
	return text, nil
}
