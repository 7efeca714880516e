package dto

import "sripos/internal/model"

type VentaFilter struct {
	Search   string
	Page     int
	PageSize int
}

type VentaListResponse struct {
	Results []model.Venta `json:"results"`
	Data    []model.Venta `json:"data"`
	Total   int64         `json:"total"`
}

func (r *VentaListResponse) Ventas() []model.Venta {
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Data
}
