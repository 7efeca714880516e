package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SRI document states, opaque to this client.
const (
	EstadoSRIProcesando = "PPR" // en procesamiento — keeps the poller alive
	EstadoSRIAutorizado = "AUT"
	EstadoSRINoAutoriz  = "NAT"
	EstadoSRIDevuelto   = "DEV"
)

// Venta is one row of the sales history view.
type Venta struct {
	ID          int64           `json:"id"`
	EstadoSRI   string          `json:"estado_sri"`
	ClaveAcceso string          `json:"clave_acceso"`
	Cliente     string          `json:"cliente"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EnProceso reports whether the document still needs polling.
func (v Venta) EnProceso() bool {
	return v.EstadoSRI == EstadoSRIProcesando
}
