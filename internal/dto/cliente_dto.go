package dto

import "sripos/internal/model"

type ClienteListResponse struct {
	Results []model.Cliente `json:"results"`
	Data    []model.Cliente `json:"data"`
}

func (r *ClienteListResponse) Clientes() []model.Cliente {
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Data
}

type CrearClienteRequest struct {
	TipoIdentificacion string `json:"tipo_identificacion" validate:"required"`
	Identificacion     string `json:"identificacion"      validate:"required,min=10,max=13"`
	RazonSocial        string `json:"razon_social"        validate:"required,min=3"`
	Email              string `json:"email"               validate:"required,email"`
	Direccion          string `json:"direccion"`
	Telefono           string `json:"telefono"`
}

type ClienteResponse struct {
	Success bool           `json:"success"`
	Data    *model.Cliente `json:"data"`
	Message string         `json:"message"`
}
