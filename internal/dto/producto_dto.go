package dto

import "sripos/internal/model"

// ProductoFilter narrows the stock-aware product list.
type ProductoFilter struct {
	Search   string
	Sucursal *int64
	Activo   *bool
	PageSize int
}

// ProductoListResponse tolerates both list envelopes ({results} and {data}).
type ProductoListResponse struct {
	Results []model.Producto `json:"results"`
	Data    []model.Producto `json:"data"`
}

// Productos returns whichever field the server populated.
func (r *ProductoListResponse) Productos() []model.Producto {
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Data
}

type PresentacionesResponse struct {
	Data []model.Presentacion `json:"data"`
}

type SucursalListResponse struct {
	Results []model.Sucursal `json:"results"`
	Data    []model.Sucursal `json:"data"`
}

func (r *SucursalListResponse) Sucursales() []model.Sucursal {
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Data
}
