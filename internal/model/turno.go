package model

import "time"

// Turno is a cashier's bounded working session tied to one sucursal. Exactly
// one may be active per user; no sale is possible without one.
type Turno struct {
	ID             int64     `json:"id"`
	Sucursal       int64     `json:"sucursal"`
	SucursalNombre string    `json:"sucursal_nombre"`
	InicioTurno    time.Time `json:"inicio_turno"`
}

// Sucursal is a branch the user may operate a turno in.
type Sucursal struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}
