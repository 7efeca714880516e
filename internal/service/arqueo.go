package service

import "github.com/shopspring/decimal"

// ── Arqueo de cierre ──────────────────────────────────────────────────────────
// Declared-vs-expected reconciliation when a turno closes. The expected side
// is accumulated client-side from the turno's completed checkouts and cash
// withdrawals; the declaration is what the cashier counted.

const (
	DesvioNormal      = "normal"      // |desvío| <= 1%
	DesvioAdvertencia = "advertencia" // |desvío| <= 5%
	DesvioCritico     = "critico"     // > 5% — requires observaciones
)

type MontosPorMetodo struct {
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
	Total         decimal.Decimal `json:"total"`
}

func (m *MontosPorMetodo) sumar() {
	m.Total = m.Efectivo.Add(m.Tarjeta).Add(m.Transferencia)
}

type Desvio struct {
	Monto         decimal.Decimal `json:"monto"`
	Porcentaje    decimal.Decimal `json:"porcentaje"`
	Clasificacion string          `json:"clasificacion"`
}

// Arqueo is the full reconciliation result shown in the close dialog.
type Arqueo struct {
	Esperado  MontosPorMetodo `json:"esperado"`
	Declarado MontosPorMetodo `json:"declarado"`
	Desvio    Desvio          `json:"desvio"`
}

// CalcularArqueo derives the variance between counted and expected totals.
func CalcularArqueo(esperado, declarado MontosPorMetodo) Arqueo {
	esperado.sumar()
	declarado.sumar()

	monto := declarado.Total.Sub(esperado.Total)
	var pct decimal.Decimal
	if !esperado.Total.IsZero() {
		pct = monto.Div(esperado.Total).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return Arqueo{
		Esperado:  esperado,
		Declarado: declarado,
		Desvio: Desvio{
			Monto:         monto,
			Porcentaje:    pct,
			Clasificacion: clasificarDesvio(pct),
		},
	}
}

func clasificarDesvio(pct decimal.Decimal) string {
	abs := pct.Abs()
	switch {
	case abs.LessThanOrEqual(decimal.NewFromInt(1)):
		return DesvioNormal
	case abs.LessThanOrEqual(decimal.NewFromInt(5)):
		return DesvioAdvertencia
	default:
		return DesvioCritico
	}
}
