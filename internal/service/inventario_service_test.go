package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"

	"sripos/internal/apierror"
	"sripos/internal/dto"
	"sripos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Fake in-memory InventarioAPI ──────────────────────────────────────────────

type fakeInventarioAPI struct {
	mu sync.Mutex

	agrupado []model.FilaAgrupada
	detalle  []model.FilaDetalle
	// modoForzado overrides the mode the response declares, regardless of
	// what the filter asked for.
	modoForzado string

	sucursales []model.Sucursal
	productos  []model.Producto

	uploadResp *dto.UploadResponse
	ajusteErr  error

	filtros        []dto.InventarioFilter
	ajustes        []dto.AjusteRequest
	transferencias []dto.TransferenciaRequest
	subidas        int
}

func respuestaInventario(t *testing.T, mode string, rows any) *dto.InventarioResponse {
	t.Helper()
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	return &dto.InventarioResponse{Mode: mode, Results: raw}
}

func (f *fakeInventarioAPI) GetInventario(_ context.Context, filter dto.InventarioFilter) (*dto.InventarioResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filtros = append(f.filtros, filter)

	mode := model.ModoAgrupado
	if filter.Sucursal != nil {
		mode = model.ModoDetalle
	}
	if f.modoForzado != "" {
		mode = f.modoForzado
	}

	var rows any
	if mode == model.ModoAgrupado {
		rows = f.agrupado
	} else {
		rows = f.detalle
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	return &dto.InventarioResponse{Mode: mode, Results: raw}, nil
}

func (f *fakeInventarioAPI) GetSucursales(_ context.Context) ([]model.Sucursal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sucursales, nil
}

func (f *fakeInventarioAPI) GetProductos(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.productos, nil
}

func (f *fakeInventarioAPI) AjusteInventario(_ context.Context, req dto.AjusteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ajusteErr != nil {
		return f.ajusteErr
	}
	f.ajustes = append(f.ajustes, req)
	return nil
}

func (f *fakeInventarioAPI) TransferenciaInventario(_ context.Context, req dto.TransferenciaRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferencias = append(f.transferencias, req)
	return nil
}

func (f *fakeInventarioAPI) UploadInventario(_ context.Context, file io.Reader, _ string, _ int64) (*dto.UploadResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subidas++
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	if f.uploadResp != nil {
		return f.uploadResp, nil
	}
	return &dto.UploadResponse{Success: true}, nil
}

var _ InventarioAPI = (*fakeInventarioAPI)(nil)

func (f *fakeInventarioAPI) totalCargas() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.filtros)
}

func (f *fakeInventarioAPI) ultimoFiltroInventario() dto.InventarioFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtros[len(f.filtros)-1]
}

func inventarioDePrueba() *fakeInventarioAPI {
	return &fakeInventarioAPI{
		agrupado: []model.FilaAgrupada{
			{
				ProductoID: 1, ProductoNombre: "Producto X", StockTotalGlobal: 42,
				Desglose: []model.DesgloseSucursal{
					{SucursalID: 1, SucursalNombre: "Matriz", Cantidad: 30},
					{SucursalID: 3, SucursalNombre: "Norte", Cantidad: 12},
				},
			},
		},
		detalle: []model.FilaDetalle{
			{ProductoID: 1, ProductoNombre: "Producto X", SucursalID: 3, SucursalNombre: "Norte", Cantidad: 12},
		},
		sucursales: []model.Sucursal{{ID: 1, Nombre: "Matriz"}, {ID: 3, Nombre: "Norte"}},
	}
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func TestCargarDatosAgrupadoSinFiltro(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	require.NoError(t, svc.CargarDatos(context.Background()))

	filtro := api.ultimoFiltroInventario()
	assert.Nil(t, filtro.Sucursal)
	assert.True(t, filtro.Agrupado)

	assert.Equal(t, model.ModoAgrupado, svc.Modo())
	assert.False(t, svc.PermiteAjuste())
	filas := svc.FilasAgrupadas()
	require.Len(t, filas, 1)
	assert.Equal(t, 42, filas[0].StockTotalGlobal)
	require.Len(t, filas[0].Desglose, 2)
	assert.Equal(t, 30, filas[0].Desglose[0].Cantidad)
	assert.Len(t, svc.Sucursales(), 2)
}

func TestSeleccionarSucursalCambiaADetalle(t *testing.T) {
	// Navegación del escenario agrupado → filtro por sucursal: modo detalle y
	// acciones de ajuste habilitadas.
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	ctx := context.Background()
	require.NoError(t, svc.CargarDatos(ctx))
	svc.AlternarExpansion(1)
	assert.True(t, svc.Expandida(1))

	sucursal := int64(3)
	require.NoError(t, svc.SeleccionarSucursal(ctx, &sucursal))

	filtro := api.ultimoFiltroInventario()
	require.NotNil(t, filtro.Sucursal)
	assert.Equal(t, int64(3), *filtro.Sucursal)
	assert.False(t, filtro.Agrupado)

	assert.Equal(t, model.ModoDetalle, svc.Modo())
	assert.True(t, svc.PermiteAjuste())
	filas := svc.FilasDetalle()
	require.Len(t, filas, 1)
	assert.Equal(t, "Norte", filas[0].SucursalNombre)

	// Al limpiar el filtro se vuelve al modo agrupado y la expansión persiste.
	require.NoError(t, svc.SeleccionarSucursal(ctx, nil))
	assert.Equal(t, model.ModoAgrupado, svc.Modo())
	assert.True(t, svc.Expandida(1))
}

func TestModoDelServidorManda(t *testing.T) {
	// Se pidió agrupado (sin filtro) pero el servidor responde detalle: se
	// renderiza lo que el servidor declara, sin error.
	api := inventarioDePrueba()
	api.modoForzado = model.ModoDetalle
	svc := NewInventarioService(api, 100)

	require.NoError(t, svc.CargarDatos(context.Background()))
	assert.True(t, api.ultimoFiltroInventario().Agrupado)
	assert.Equal(t, model.ModoDetalle, svc.Modo())
	assert.NotEmpty(t, svc.FilasDetalle())
	assert.Empty(t, svc.FilasAgrupadas())
}

func TestModoDesconocidoEsError(t *testing.T) {
	api := inventarioDePrueba()
	api.modoForzado = "resumen"
	svc := NewInventarioService(api, 100)

	err := svc.CargarDatos(context.Background())
	assert.ErrorContains(t, err, "modo desconocido")
}

func TestBuscarAplicaElTermino(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	require.NoError(t, svc.Buscar(context.Background(), "producto x"))
	assert.Equal(t, "producto x", api.ultimoFiltroInventario().Search)
}

func TestAlternarExpansion(t *testing.T) {
	svc := NewInventarioService(inventarioDePrueba(), 100)

	assert.False(t, svc.Expandida(1))
	svc.AlternarExpansion(1)
	assert.True(t, svc.Expandida(1))
	svc.AlternarExpansion(1)
	assert.False(t, svc.Expandida(1))
}

// ── Ajuste ────────────────────────────────────────────────────────────────────

func TestAjustarValidaAntesDeLaRed(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	err := svc.Ajustar(context.Background(), dto.AjusteRequest{
		Producto: 1, Sucursal: 3, Tipo: "incremento", Cantidad: 5,
		// sin motivo
	})
	var valErr *apierror.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Empty(t, api.ajustes)
}

func TestAjustarTipoInvalido(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	err := svc.Ajustar(context.Background(), dto.AjusteRequest{
		Producto: 1, Sucursal: 3, Tipo: "correccion", Cantidad: 5, Motivo: "conteo físico",
	})
	var valErr *apierror.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Empty(t, api.ajustes)
}

func TestAjustarRecargaAlFinalizar(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	err := svc.Ajustar(context.Background(), dto.AjusteRequest{
		Producto: 1, Sucursal: 3, Tipo: "decremento", Cantidad: 2, Motivo: "producto caducado",
	})
	require.NoError(t, err)
	require.Len(t, api.ajustes, 1)
	assert.Equal(t, 1, api.totalCargas())
}

func TestAjustarFalloNoRecarga(t *testing.T) {
	api := inventarioDePrueba()
	api.ajusteErr = apierror.New("stock insuficiente para el decremento")
	svc := NewInventarioService(api, 100)

	err := svc.Ajustar(context.Background(), dto.AjusteRequest{
		Producto: 1, Sucursal: 3, Tipo: "decremento", Cantidad: 99, Motivo: "conteo físico",
	})
	assert.ErrorContains(t, err, "stock insuficiente")
	assert.Zero(t, api.totalCargas())
}

// ── Transferencia ─────────────────────────────────────────────────────────────

func TestTransferirMismaSucursal(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	casos := []struct {
		nombre  string
		origen  int64
		destino int64
	}{
		{"sucursales iguales", 3, 3},
		{"ambas sin seleccionar", 0, 0},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := svc.Transferir(context.Background(), dto.TransferenciaRequest{
				Producto: 1, OrigenID: c.origen, DestinoID: c.destino, Cantidad: 5,
			})
			assert.ErrorIs(t, err, ErrMismaSucursal)
		})
	}
	assert.Empty(t, api.transferencias)
	assert.Zero(t, api.totalCargas())
}

func TestTransferirConGuiaRequiereTransportista(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	req := dto.TransferenciaRequest{
		Producto: 1, OrigenID: 1, DestinoID: 3, Cantidad: 5, GenerarGuia: true,
	}
	err := svc.Transferir(context.Background(), req)
	assert.ErrorIs(t, err, ErrTransportistaRequerido)

	req.TransportistaRUC = "1790012345001"
	err = svc.Transferir(context.Background(), req)
	assert.ErrorIs(t, err, ErrTransportistaRequerido)
	assert.Empty(t, api.transferencias)

	// Con RUC y razón social basta; la placa es opcional.
	req.TransportistaRazonSocial = "Transportes Andinos S.A."
	err = svc.Transferir(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, api.transferencias, 1)
	assert.Empty(t, api.transferencias[0].Placa)
	assert.Equal(t, 1, api.totalCargas())
}

func TestTransferirSinGuiaIgnoraTransportista(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	err := svc.Transferir(context.Background(), dto.TransferenciaRequest{
		Producto: 1, OrigenID: 1, DestinoID: 3, Cantidad: 5,
	})
	require.NoError(t, err)
	require.Len(t, api.transferencias, 1)
	assert.False(t, api.transferencias[0].GenerarGuia)
}

// ── Importación ───────────────────────────────────────────────────────────────

func TestImportarRequiereArchivoYSucursal(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	ctx := context.Background()
	err := svc.ImportarArchivo(ctx, nil, "stock.xlsx", 3)
	assert.ErrorIs(t, err, ErrArchivoRequerido)

	err = svc.ImportarArchivo(ctx, strings.NewReader("x"), "stock.xlsx", 0)
	assert.ErrorIs(t, err, ErrArchivoRequerido)
	assert.Zero(t, api.subidas)
}

func TestImportarArchivoInvalidoNoSube(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	err := svc.ImportarArchivo(context.Background(), strings.NewReader("no es un xlsx"), "stock.xlsx", 3)
	assert.ErrorIs(t, err, ErrArchivoInvalido)
	assert.Zero(t, api.subidas)
}

func TestImportarConcatenaErroresDelServidor(t *testing.T) {
	api := inventarioDePrueba()
	api.uploadResp = &dto.UploadResponse{
		Success: false,
		Errors:  []string{"fila 2: código desconocido", "fila 5: cantidad negativa"},
	}
	svc := NewInventarioService(api, 100)

	archivo := archivoImportacionValido(t)
	err := svc.ImportarArchivo(context.Background(), archivo, "stock.xlsx", 3)
	assert.ErrorIs(t, err, ErrImportacion)
	assert.ErrorContains(t, err, "fila 2: código desconocido; fila 5: cantidad negativa")
	assert.Zero(t, api.totalCargas())
}

func TestImportarExitosoRecarga(t *testing.T) {
	api := inventarioDePrueba()
	svc := NewInventarioService(api, 100)

	archivo := archivoImportacionValido(t)
	require.NoError(t, svc.ImportarArchivo(context.Background(), archivo, "stock.xlsx", 3))
	assert.Equal(t, 1, api.subidas)
	assert.Equal(t, 1, api.totalCargas())
}
