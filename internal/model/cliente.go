package model

// IdentificacionConsumidorFinal is the fixed generic identification the SRI
// assigns to anonymous retail sales.
const IdentificacionConsumidorFinal = "9999999999"

// Cliente is the customer attached to the next checkout.
type Cliente struct {
	ID                 int64  `json:"id,omitempty"`
	TipoIdentificacion string `json:"tipo_identificacion"`
	Identificacion     string `json:"identificacion"`
	RazonSocial        string `json:"razon_social"`
	Email              string `json:"email,omitempty"`
	Direccion          string `json:"direccion,omitempty"`
}

// ConsumidorFinal returns the default customer selection.
func ConsumidorFinal() Cliente {
	return Cliente{
		TipoIdentificacion: "07",
		Identificacion:     IdentificacionConsumidorFinal,
		RazonSocial:        "CONSUMIDOR FINAL",
	}
}

// EsConsumidorFinal reports whether the selection is still the default
// identity, which gates checkouts above the SRI amount threshold.
func (c Cliente) EsConsumidorFinal() bool {
	return c.Identificacion == IdentificacionConsumidorFinal
}
