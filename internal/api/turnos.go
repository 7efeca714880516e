package api

import (
	"context"
	"errors"
	"net/http"

	"sripos/internal/apierror"
	"sripos/internal/dto"
	"sripos/internal/model"
)

// GetTurnoActivo queries the backend for the user's open turno. A 404 means
// no turno is active, not a failure.
func (c *Client) GetTurnoActivo(ctx context.Context) (*dto.TurnoActivoResponse, error) {
	var resp dto.TurnoActivoResponse
	err := c.do(ctx, http.MethodGet, "/turnos/activo/", nil, nil, &resp)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return &dto.TurnoActivoResponse{Success: true}, nil
		}
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AbrirTurno(ctx context.Context, sucursalID int64) (*model.Turno, error) {
	var resp dto.TurnoResponse
	req := dto.AbrirTurnoRequest{Sucursal: sucursalID}
	if err := c.do(ctx, http.MethodPost, "/turnos/abrir/", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, apierror.New("el servidor no devolvió el turno abierto")
	}
	return resp.Data, nil
}

func (c *Client) CerrarTurno(ctx context.Context, req dto.CerrarTurnoRequest) error {
	return c.do(ctx, http.MethodPost, "/turnos/cerrar/", nil, req, nil)
}
