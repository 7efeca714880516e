package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFallo = errors.New("backend no disponible")

func fallar() error  { return errFallo }
func triunfo() error { return nil }

func TestCircuitBreakerAbreTrasElUmbral(t *testing.T) {
	cb := NewCircuitBreaker(3, 2, time.Hour)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Execute(fallar), errFallo)
		assert.Equal(t, CBClosed, cb.State())
	}
	assert.ErrorIs(t, cb.Execute(fallar), errFallo)
	assert.Equal(t, CBOpen, cb.State())

	// Abierto: fast-fail sin ejecutar fn.
	ejecutado := false
	err := cb.Execute(func() error { ejecutado = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, ejecutado)
}

func TestCircuitBreakerExitoReiniciaElConteo(t *testing.T) {
	cb := NewCircuitBreaker(3, 2, time.Hour)

	require.Error(t, cb.Execute(fallar))
	require.Error(t, cb.Execute(fallar))
	require.NoError(t, cb.Execute(triunfo))

	// El contador se reinició: dos fallos más no alcanzan el umbral.
	require.Error(t, cb.Execute(fallar))
	require.Error(t, cb.Execute(fallar))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerRecuperacionPorHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker(1, 2, 10*time.Millisecond)

	require.Error(t, cb.Execute(fallar))
	require.Equal(t, CBOpen, cb.State())

	// Pasado el timeout se permite la sonda.
	require.Eventually(t, func() bool {
		return cb.State() == CBHalfOpen
	}, time.Second, time.Millisecond)

	require.NoError(t, cb.Execute(triunfo))
	assert.Equal(t, CBHalfOpen, cb.State())
	require.NoError(t, cb.Execute(triunfo))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerFalloEnHalfOpenReabre(t *testing.T) {
	cb := NewCircuitBreaker(1, 2, 10*time.Millisecond)

	require.Error(t, cb.Execute(fallar))
	require.Eventually(t, func() bool {
		return cb.State() == CBHalfOpen
	}, time.Second, time.Millisecond)

	require.Error(t, cb.Execute(fallar))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerValoresPorDefecto(t *testing.T) {
	cb := NewCircuitBreaker(0, 0, 0)
	assert.Equal(t, 5, cb.failureThreshold)
	assert.Equal(t, 2, cb.successThreshold)
	assert.Equal(t, 60*time.Second, cb.openTimeout)
}

func TestCBStateString(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
