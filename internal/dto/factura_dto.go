package dto

import (
	"sripos/internal/model"

	"github.com/shopspring/decimal"
)

// FormaPagoEfectivo is the SRI payment-method code the POS always submits
// ("sin utilización del sistema financiero").
const FormaPagoEfectivo = "01"

type ItemFactura struct {
	Producto       int64           `json:"producto"`
	Presentacion   int64           `json:"presentacion"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type FacturaPOSRequest struct {
	Cliente   model.Cliente `json:"cliente"`
	Items     []ItemFactura `json:"items" validate:"required,min=1"`
	FormaPago string        `json:"forma_pago"`
	// ReferenciaLocal lets the backend deduplicate a re-submitted checkout.
	ReferenciaLocal string `json:"referencia_local,omitempty"`
}

type FacturaPOSResponse struct {
	EstadoSRI   string          `json:"estado_sri"`
	ClaveAcceso string          `json:"clave_acceso"`
	Total       decimal.Decimal `json:"total"`
	Message     string          `json:"message"`
}
