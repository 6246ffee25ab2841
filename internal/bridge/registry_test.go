package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_InvokeReturnsHandlerText(t *testing.T) {
	reg := NewRegistry()
	reg.Register("greet", func(context.Context) (string, error) {
		return "Hello from backend", nil
	})

	got, err := reg.Invoke(context.Background(), "greet")
	require.NoError(t, err)
	assert.Equal(t, "Hello from backend", got)
}

func TestRegistry_UnknownOperation(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Invoke(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallFailed)
	assert.ErrorIs(t, err, ErrUnknownOperation)

	var callErr *CallError
	require.ErrorAs(t, err, &callErr)
	assert.Equal(t, "missing", callErr.Op)
}

func TestRegistry_HandlerErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	reg := NewRegistry()
	reg.Register("explode", func(context.Context) (string, error) {
		return "partial", boom
	})

	got, err := reg.Invoke(context.Background(), "explode")
	assert.Empty(t, got)
	assert.ErrorIs(t, err, ErrCallFailed)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `invoke "explode"`)
}

func TestRegistry_HandlerPanicIsRecovered(t *testing.T) {
	reg := NewRegistry()
	reg.Register("panics", func(context.Context) (string, error) {
		panic("kaboom")
	})

	var err error
	assert.NotPanics(t, func() {
		_, err = reg.Invoke(context.Background(), "panics")
	})
	assert.ErrorIs(t, err, ErrCallFailed)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRegistry_PassesContext(t *testing.T) {
	type key struct{}
	reg := NewRegistry()
	reg.Register("ctx", func(ctx context.Context) (string, error) {
		v, _ := ctx.Value(key{}).(string)
		return v, nil
	})

	ctx := context.WithValue(context.Background(), key{}, "carried")
	got, err := reg.Invoke(ctx, "ctx")
	require.NoError(t, err)
	assert.Equal(t, "carried", got)
}

func TestRegistry_RegisterRejectsBadInput(t *testing.T) {
	reg := NewRegistry()
	ok := func(context.Context) (string, error) { return "", nil }

	assert.Panics(t, func() { reg.Register("", ok) })
	assert.Panics(t, func() { reg.Register("nil", nil) })

	reg.Register("once", ok)
	assert.Panics(t, func() { reg.Register("once", ok) })
}

func TestRegistry_Operations(t *testing.T) {
	reg := NewRegistry()
	ok := func(context.Context) (string, error) { return "", nil }
	reg.Register("b", ok)
	reg.Register("a", ok)

	assert.Equal(t, []string{"a", "b"}, reg.Operations())
}
