package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"sripos/internal/dto"
	"sripos/internal/model"
)

func (c *Client) GetProductos(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Sucursal != nil {
		query.Set("sucursal", strconv.FormatInt(*filter.Sucursal, 10))
	}
	if filter.Activo != nil {
		query.Set("activo", strconv.FormatBool(*filter.Activo))
	}
	if filter.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	var resp dto.ProductoListResponse
	if err := c.do(ctx, http.MethodGet, "/productos/", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Productos(), nil
}

func (c *Client) GetPresentaciones(ctx context.Context, productoID int64) ([]model.Presentacion, error) {
	var resp dto.PresentacionesResponse
	path := fmt.Sprintf("/productos/%d/presentaciones/", productoID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) GetSucursales(ctx context.Context) ([]model.Sucursal, error) {
	var resp dto.SucursalListResponse
	if err := c.do(ctx, http.MethodGet, "/sucursales/", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sucursales(), nil
}
