package model

// Inventory read modes. The mode is server-declared: the client requests
// grouped aggregation when no sucursal filter is selected, but renders
// whatever mode the response carries.
const (
	ModoDetalle  = "detalle"
	ModoAgrupado = "agrupado"
)

// FilaDetalle is one (producto, sucursal) pair with a concrete on-hand count.
// Adjustment actions are only exposed on these rows.
type FilaDetalle struct {
	ProductoID     int64  `json:"producto_id"`
	ProductoNombre string `json:"producto_nombre"`
	SucursalID     int64  `json:"sucursal_id"`
	SucursalNombre string `json:"sucursal_nombre"`
	Cantidad       int    `json:"cantidad"`
}

// DesgloseSucursal is one per-sucursal sub-quantity inside a grouped row.
type DesgloseSucursal struct {
	SucursalID     int64  `json:"sucursal_id"`
	SucursalNombre string `json:"sucursal_nombre"`
	Cantidad       int    `json:"cantidad"`
}

// FilaAgrupada aggregates one product across sucursales with an expandable
// per-sucursal breakdown.
type FilaAgrupada struct {
	ProductoID       int64              `json:"producto_id"`
	ProductoNombre   string             `json:"producto_nombre"`
	StockTotalGlobal int                `json:"stock_total_global"`
	Desglose         []DesgloseSucursal `json:"desglose"`
}
