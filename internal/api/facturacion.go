package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sripos/internal/dto"
	"sripos/internal/model"
)

func (c *Client) CrearFacturaPOS(ctx context.Context, req dto.FacturaPOSRequest) (*dto.FacturaPOSResponse, error) {
	var resp dto.FacturaPOSResponse
	if err := c.do(ctx, http.MethodPost, "/pos/facturas/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetVentas(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}
	var resp dto.VentaListResponse
	if err := c.do(ctx, http.MethodGet, "/ventas/", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Ventas(), nil
}
