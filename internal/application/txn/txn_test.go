package txn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Bodegas-api/internal/domain"
)

// scriptedRunner devuelve los errores de errs en orden; luego nil.
type scriptedRunner struct {
	errs  []error
	calls int
}

func (r *scriptedRunner) Run(_ context.Context, fn func(s Store) error) error {
	r.calls++
	if r.calls <= len(r.errs) {
		return r.errs[r.calls-1]
	}
	return fn(Store{})
}

func TestRetrying_ReintentaBusyYConflict(t *testing.T) {
	inner := &scriptedRunner{errs: []error{
		domain.NewError(domain.ErrBusy, "lock"),
		domain.NewError(domain.ErrConflict, "serialization"),
	}}
	r := NewRetrying(inner, RetryPolicy{MaxRetries: 3, Backoff: time.Millisecond}, zerolog.Nop())

	ran := false
	err := r.Run(context.Background(), func(Store) error { ran = true; return nil })
	assert.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 3, inner.calls)
}

func TestRetrying_AgotaReintentos(t *testing.T) {
	busy := domain.NewError(domain.ErrBusy, "lock")
	inner := &scriptedRunner{errs: []error{busy, busy, busy}}
	r := NewRetrying(inner, RetryPolicy{MaxRetries: 2, Backoff: time.Millisecond}, zerolog.Nop())

	err := r.Run(context.Background(), func(Store) error { return nil })
	assert.True(t, errors.Is(err, domain.ErrBusy))
	assert.Equal(t, 3, inner.calls)
}

func TestRetrying_NoReintentaErroresDeNegocio(t *testing.T) {
	inner := &scriptedRunner{}
	r := NewRetrying(inner, RetryPolicy{MaxRetries: 5, Backoff: time.Millisecond}, zerolog.Nop())

	err := r.Run(context.Background(), func(Store) error {
		return domain.NewError(domain.ErrCapacityExceeded, "Not enough capacity")
	})
	assert.True(t, errors.Is(err, domain.ErrCapacityExceeded))
	assert.Equal(t, 1, inner.calls)
}

func TestRetrying_RespetaCancelacion(t *testing.T) {
	busy := domain.NewError(domain.ErrBusy, "lock")
	inner := &scriptedRunner{errs: []error{busy, busy}}
	r := NewRetrying(inner, RetryPolicy{MaxRetries: 5, Backoff: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Run(ctx, func(Store) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, inner.calls)
}

func TestNewRetrying_NegativoEsCero(t *testing.T) {
	busy := domain.NewError(domain.ErrBusy, "lock")
	inner := &scriptedRunner{errs: []error{busy}}
	r := NewRetrying(inner, RetryPolicy{MaxRetries: -1}, zerolog.Nop())
	assert.Error(t, r.Run(context.Background(), func(Store) error { return nil }))
	assert.Equal(t, 1, inner.calls)
}
