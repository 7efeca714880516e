package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"sripos/internal/dto"
)

func (c *Client) GetInventario(ctx context.Context, filter dto.InventarioFilter) (*dto.InventarioResponse, error) {
	query := url.Values{}
	query.Set("agrupado", strconv.FormatBool(filter.Agrupado))
	if filter.Sucursal != nil {
		query.Set("sucursal", strconv.FormatInt(*filter.Sucursal, 10))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var resp dto.InventarioResponse
	if err := c.do(ctx, http.MethodGet, "/inventario/", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AjusteInventario(ctx context.Context, req dto.AjusteRequest) error {
	return c.do(ctx, http.MethodPost, "/inventario/ajuste/", nil, req, nil)
}

func (c *Client) TransferenciaInventario(ctx context.Context, req dto.TransferenciaRequest) error {
	return c.do(ctx, http.MethodPost, "/inventario/transferencia/", nil, req, nil)
}

// UploadInventario sends the spreadsheet whose stock counts REPLACE the
// sucursal's current ones (set semantics, not add).
func (c *Client) UploadInventario(ctx context.Context, file io.Reader, fileName string, sucursalID int64) (*dto.UploadResponse, error) {
	fields := map[string]string{
		"sucursal": strconv.FormatInt(sucursalID, 10),
	}
	var resp dto.UploadResponse
	if err := c.upload(ctx, "/inventario/upload/", fields, "archivo", fileName, file, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
