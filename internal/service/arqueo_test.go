package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func montos(efectivo, tarjeta, transferencia float64) MontosPorMetodo {
	return MontosPorMetodo{
		Efectivo:      decimal.NewFromFloat(efectivo),
		Tarjeta:       decimal.NewFromFloat(tarjeta),
		Transferencia: decimal.NewFromFloat(transferencia),
	}
}

func TestCalcularArqueoCuadreExacto(t *testing.T) {
	arqueo := CalcularArqueo(montos(100, 50, 25), montos(100, 50, 25))
	assert.True(t, arqueo.Desvio.Monto.IsZero())
	assert.Equal(t, DesvioNormal, arqueo.Desvio.Clasificacion)
	assert.True(t, arqueo.Esperado.Total.Equal(decimal.NewFromInt(175)))
	assert.True(t, arqueo.Declarado.Total.Equal(decimal.NewFromInt(175)))
}

func TestCalcularArqueoClasificacion(t *testing.T) {
	casos := []struct {
		nombre        string
		declarado     float64
		clasificacion string
	}{
		{"desvío dentro del 1%", 99.50, DesvioNormal},
		{"exactamente 1%", 99, DesvioNormal},
		{"entre 1% y 5%", 97, DesvioAdvertencia},
		{"exactamente 5%", 95, DesvioAdvertencia},
		{"más del 5%", 90, DesvioCritico},
		{"sobrante crítico", 110, DesvioCritico},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			arqueo := CalcularArqueo(montos(100, 0, 0), montos(c.declarado, 0, 0))
			assert.Equal(t, c.clasificacion, arqueo.Desvio.Clasificacion)
		})
	}
}

func TestCalcularArqueoConservaElSigno(t *testing.T) {
	faltante := CalcularArqueo(montos(100, 0, 0), montos(90, 0, 0))
	assert.True(t, faltante.Desvio.Monto.IsNegative())
	assert.True(t, faltante.Desvio.Porcentaje.IsNegative())

	sobrante := CalcularArqueo(montos(100, 0, 0), montos(110, 0, 0))
	assert.True(t, sobrante.Desvio.Monto.IsPositive())
}

func TestCalcularArqueoSinVentas(t *testing.T) {
	// Sin ventas esperadas no hay porcentaje que calcular; declarar cero
	// cuadra en normal.
	arqueo := CalcularArqueo(MontosPorMetodo{}, MontosPorMetodo{})
	assert.Equal(t, DesvioNormal, arqueo.Desvio.Clasificacion)
	assert.True(t, arqueo.Desvio.Porcentaje.IsZero())
}
