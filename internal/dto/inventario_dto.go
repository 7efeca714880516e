package dto

import (
	"encoding/json"
	"fmt"

	"sripos/internal/model"
)

// InventarioFilter is the read-side query. Agrupado is derived by the caller
// from the absence of a sucursal filter, but the response mode — not this
// flag — decides how rows are rendered.
type InventarioFilter struct {
	Sucursal *int64
	Search   string
	Agrupado bool
}

// InventarioResponse is a tagged union: the server declares the mode and the
// rows decode accordingly. Rows stay raw until the tag has been inspected.
type InventarioResponse struct {
	Mode    string          `json:"mode"`
	Results json.RawMessage `json:"results"`
}

// Detalle decodes the rows as (producto, sucursal) pairs. Only valid when
// Mode is "detalle".
func (r *InventarioResponse) Detalle() ([]model.FilaDetalle, error) {
	if r.Mode != model.ModoDetalle {
		return nil, fmt.Errorf("inventario: la respuesta es modo %q, no detalle", r.Mode)
	}
	var filas []model.FilaDetalle
	if err := json.Unmarshal(r.Results, &filas); err != nil {
		return nil, fmt.Errorf("inventario: filas detalle inválidas: %w", err)
	}
	return filas, nil
}

// Agrupado decodes the rows as cross-sucursal aggregates. Only valid when
// Mode is "agrupado".
func (r *InventarioResponse) Agrupado() ([]model.FilaAgrupada, error) {
	if r.Mode != model.ModoAgrupado {
		return nil, fmt.Errorf("inventario: la respuesta es modo %q, no agrupado", r.Mode)
	}
	var filas []model.FilaAgrupada
	if err := json.Unmarshal(r.Results, &filas); err != nil {
		return nil, fmt.Errorf("inventario: filas agrupadas inválidas: %w", err)
	}
	return filas, nil
}

// AjusteRequest is the manual stock adjustment command. Every field is
// required before submission.
type AjusteRequest struct {
	Producto int64  `json:"producto" validate:"required,min=1"`
	Sucursal int64  `json:"sucursal" validate:"required,min=1"`
	Tipo     string `json:"tipo"     validate:"required,oneof=incremento decremento"`
	Cantidad int    `json:"cantidad" validate:"required,gt=0"`
	Motivo   string `json:"motivo"   validate:"required,min=3"`
}

// TransferenciaRequest moves stock between sucursales, optionally generating
// a guía de remisión in the same user action.
type TransferenciaRequest struct {
	Producto    int64 `json:"producto"    validate:"required,min=1"`
	OrigenID    int64 `json:"origen_id"`
	DestinoID   int64 `json:"destino_id"`
	Cantidad    int   `json:"cantidad"    validate:"required,gt=0"`
	GenerarGuia bool  `json:"generar_guia"`
	// Transportista — required only when GenerarGuia is set.
	TransportistaRUC         string `json:"transportista_ruc,omitempty"`
	TransportistaRazonSocial string `json:"transportista_razon_social,omitempty"`
	Placa                    string `json:"placa,omitempty"`
}

// UploadResponse is the bulk-import envelope. On success:false the error
// strings are concatenated for display.
type UploadResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

type GenericResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
