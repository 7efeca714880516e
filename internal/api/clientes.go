package api

import (
	"context"
	"net/http"
	"net/url"

	"sripos/internal/apierror"
	"sripos/internal/dto"
	"sripos/internal/model"
)

func (c *Client) GetClientes(ctx context.Context, search string) ([]model.Cliente, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	var resp dto.ClienteListResponse
	if err := c.do(ctx, http.MethodGet, "/clientes/", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Clientes(), nil
}

func (c *Client) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	var resp dto.ClienteResponse
	if err := c.do(ctx, http.MethodPost, "/clientes/", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, apierror.New("el servidor no devolvió el cliente creado")
	}
	return resp.Data, nil
}
