package model

import "github.com/shopspring/decimal"

// Producto is the stock-aware product row the POS works against. Stock is the
// on-hand count for the turno's sucursal as of the last reload — the server
// remains the decrement authority.
type Producto struct {
	ID            int64           `json:"id"`
	Codigo        string          `json:"codigo"`
	Nombre        string          `json:"nombre"`
	Stock         int             `json:"stock"`
	PorcentajeIVA decimal.Decimal `json:"porcentaje_iva"`
	Activo        bool            `json:"activo"`
}

// Presentacion is a sellable packaging/pricing unit of a product (unidad,
// caja, etc.), each with its own price. The first presentation returned by
// the API is the default priced unit at add-to-cart time.
type Presentacion struct {
	ID       int64           `json:"id"`
	Producto int64           `json:"producto"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
}
