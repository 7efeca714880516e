package dto

import (
	"sripos/internal/model"

	"github.com/shopspring/decimal"
)

// TurnoActivoResponse tolerates both envelope variants the backend emits for
// the active-shift check: {success, activo, data} and
// {success, tiene_turno_activo, turno}.
type TurnoActivoResponse struct {
	Success          bool         `json:"success"`
	ActivoFlag       bool         `json:"activo"`
	TieneTurnoActivo bool         `json:"tiene_turno_activo"`
	Data             *model.Turno `json:"data"`
	TurnoData        *model.Turno `json:"turno"`
}

// Activo reports whether a turno is open under either envelope variant.
func (r *TurnoActivoResponse) Activo() bool {
	return r.ActivoFlag || r.TieneTurnoActivo
}

// Turno returns whichever payload field the server populated.
func (r *TurnoActivoResponse) Turno() *model.Turno {
	if r.Data != nil {
		return r.Data
	}
	return r.TurnoData
}

type AbrirTurnoRequest struct {
	Sucursal int64 `json:"sucursal" validate:"required,min=1"`
}

type TurnoResponse struct {
	Success bool         `json:"success"`
	Data    *model.Turno `json:"data"`
	Message string       `json:"message"`
}

// SalidaCaja is one cash withdrawal declared at close time.
type SalidaCaja struct {
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
}

type CerrarTurnoRequest struct {
	EfectivoTotal      decimal.Decimal `json:"efectivo_total"`
	TarjetaTotal       decimal.Decimal `json:"tarjeta_total"`
	TransferenciaTotal decimal.Decimal `json:"transferencia_total"`
	SalidasCaja        []SalidaCaja    `json:"salidas_caja"`
	Observaciones      *string         `json:"observaciones,omitempty"`
}
