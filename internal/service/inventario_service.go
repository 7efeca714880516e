package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"sripos/internal/dto"
	"sripos/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// InventarioAPI is the slice of the tenant API the inventory view consumes.
type InventarioAPI interface {
	GetInventario(ctx context.Context, filter dto.InventarioFilter) (*dto.InventarioResponse, error)
	GetSucursales(ctx context.Context) ([]model.Sucursal, error)
	GetProductos(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	AjusteInventario(ctx context.Context, req dto.AjusteRequest) error
	TransferenciaInventario(ctx context.Context, req dto.TransferenciaRequest) error
	UploadInventario(ctx context.Context, file io.Reader, fileName string, sucursalID int64) (*dto.UploadResponse, error)
}

var (
	ErrMismaSucursal          = errors.New("la sucursal de origen y destino no pueden ser iguales")
	ErrTransportistaRequerido = errors.New("la guía de remisión requiere RUC y razón social del transportista")
	ErrArchivoRequerido       = errors.New("debe seleccionar un archivo y una sucursal de destino")
	ErrImportacion            = errors.New("la importación fue rechazada")
)

// InventarioService owns the two read projections of stock and the three
// mutating workflows. Every successful mutation reloads the aggregated view.
type InventarioService struct {
	api      InventarioAPI
	pageSize int

	mu         sync.Mutex
	modo       string
	detalle    []model.FilaDetalle
	agrupado   []model.FilaAgrupada
	sucursales []model.Sucursal
	productos  []model.Producto
	sucursal   *int64
	search     string
	expandidas map[int64]bool
	loadToken  uint64
}

func NewInventarioService(api InventarioAPI, pageSize int) *InventarioService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &InventarioService{
		api:        api,
		pageSize:   pageSize,
		expandidas: make(map[int64]bool),
	}
}

// ── Lectura ───────────────────────────────────────────────────────────────────

// CargarDatos is the sole query entry point. Grouped aggregation is requested
// whenever no sucursal filter is set, but the response's mode field decides
// which projection gets rendered — the two may diverge and the server wins.
func (s *InventarioService) CargarDatos(ctx context.Context) error {
	s.mu.Lock()
	sucursal := s.sucursal
	search := s.search
	s.loadToken++
	token := s.loadToken
	s.mu.Unlock()

	filter := dto.InventarioFilter{
		Sucursal: sucursal,
		Search:   search,
		Agrupado: sucursal == nil,
	}

	var (
		inventario *dto.InventarioResponse
		sucursales []model.Sucursal
		productos  []model.Producto
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.api.GetInventario(gctx, filter)
		if err != nil {
			return err
		}
		inventario = resp
		return nil
	})
	g.Go(func() error {
		// Dropdown data is non-critical — log and continue on failure.
		resp, err := s.api.GetSucursales(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("inventario: no se pudieron cargar las sucursales")
			return nil
		}
		sucursales = resp
		return nil
	})
	g.Go(func() error {
		activo := true
		resp, err := s.api.GetProductos(gctx, dto.ProductoFilter{Activo: &activo, PageSize: s.pageSize})
		if err != nil {
			log.Warn().Err(err).Msg("inventario: no se pudieron cargar los productos")
			return nil
		}
		productos = resp
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	var (
		detalle  []model.FilaDetalle
		agrupado []model.FilaAgrupada
		err      error
	)
	switch inventario.Mode {
	case model.ModoDetalle:
		detalle, err = inventario.Detalle()
	case model.ModoAgrupado:
		agrupado, err = inventario.Agrupado()
	default:
		err = fmt.Errorf("inventario: modo desconocido %q", inventario.Mode)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loadToken {
		return nil
	}
	s.modo = inventario.Mode
	s.detalle = detalle
	s.agrupado = agrupado
	if sucursales != nil {
		s.sucursales = sucursales
	}
	if productos != nil {
		s.productos = productos
	}
	return nil
}

// SeleccionarSucursal sets the branch filter and reloads. A nil sucursal
// clears the filter, flipping the request to grouped mode.
func (s *InventarioService) SeleccionarSucursal(ctx context.Context, sucursalID *int64) error {
	s.mu.Lock()
	s.sucursal = sucursalID
	s.mu.Unlock()
	return s.CargarDatos(ctx)
}

// Buscar sets the free-text filter and reloads.
func (s *InventarioService) Buscar(ctx context.Context, term string) error {
	s.mu.Lock()
	s.search = term
	s.mu.Unlock()
	return s.CargarDatos(ctx)
}

// AlternarExpansion toggles a grouped row's breakdown. Expansion state is
// UI-local and deliberately survives reloads — product IDs are stable.
func (s *InventarioService) AlternarExpansion(productoID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expandidas[productoID] {
		delete(s.expandidas, productoID)
		return
	}
	s.expandidas[productoID] = true
}

func (s *InventarioService) Expandida(productoID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandidas[productoID]
}

// PermiteAjuste reports whether adjustment actions are exposed: only detail
// rows name a single sucursal to adjust.
func (s *InventarioService) PermiteAjuste() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modo == model.ModoDetalle
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// Ajustar submits a manual stock adjustment and reloads on success. A failed
// submit returns the error so the dialog stays open with it.
func (s *InventarioService) Ajustar(ctx context.Context, req dto.AjusteRequest) error {
	if err := validarStruct(req); err != nil {
		return err
	}
	if err := s.api.AjusteInventario(ctx, req); err != nil {
		return err
	}
	log.Info().
		Int64("producto", req.Producto).
		Int64("sucursal", req.Sucursal).
		Str("tipo", req.Tipo).
		Int("cantidad", req.Cantidad).
		Msg("inventario: ajuste registrado")
	return s.CargarDatos(ctx)
}

// Transferir moves stock between sucursales, optionally generating a guía de
// remisión in the same action. Origen == destino is rejected before any
// network call, for any equal pair.
func (s *InventarioService) Transferir(ctx context.Context, req dto.TransferenciaRequest) error {
	if req.OrigenID == req.DestinoID {
		return ErrMismaSucursal
	}
	if err := validarStruct(req); err != nil {
		return err
	}
	if req.GenerarGuia {
		if strings.TrimSpace(req.TransportistaRUC) == "" ||
			strings.TrimSpace(req.TransportistaRazonSocial) == "" {
			return ErrTransportistaRequerido
		}
	}
	if err := s.api.TransferenciaInventario(ctx, req); err != nil {
		return err
	}
	log.Info().
		Int64("producto", req.Producto).
		Int64("origen", req.OrigenID).
		Int64("destino", req.DestinoID).
		Bool("guia", req.GenerarGuia).
		Msg("inventario: transferencia registrada")
	return s.CargarDatos(ctx)
}

// ImportarArchivo uploads a spreadsheet whose counts REPLACE the sucursal's
// stock. The file is pre-validated locally before any network traffic; a
// structured rejection concatenates every error string for display.
func (s *InventarioService) ImportarArchivo(ctx context.Context, file io.Reader, fileName string, sucursalID int64) error {
	if file == nil || sucursalID <= 0 {
		return ErrArchivoRequerido
	}

	contenido, filas, err := ValidarArchivoImportacion(file)
	if err != nil {
		return err
	}
	log.Debug().Int("filas", len(filas)).Str("archivo", fileName).Msg("inventario: archivo validado")

	resp, err := s.api.UploadInventario(ctx, contenido, fileName, sucursalID)
	if err != nil {
		return err
	}
	if !resp.Success {
		if len(resp.Errors) > 0 {
			return fmt.Errorf("%w: %s", ErrImportacion, strings.Join(resp.Errors, "; "))
		}
		if resp.Message != "" {
			return fmt.Errorf("%w: %s", ErrImportacion, resp.Message)
		}
		return ErrImportacion
	}
	return s.CargarDatos(ctx)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *InventarioService) Modo() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modo
}

func (s *InventarioService) FilasDetalle() []model.FilaDetalle {
	s.mu.Lock()
	defer s.mu.Unlock()
	filas := make([]model.FilaDetalle, len(s.detalle))
	copy(filas, s.detalle)
	return filas
}

func (s *InventarioService) FilasAgrupadas() []model.FilaAgrupada {
	s.mu.Lock()
	defer s.mu.Unlock()
	filas := make([]model.FilaAgrupada, len(s.agrupado))
	copy(filas, s.agrupado)
	return filas
}

func (s *InventarioService) Sucursales() []model.Sucursal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sucursales := make([]model.Sucursal, len(s.sucursales))
	copy(sucursales, s.sucursales)
	return sucursales
}

func (s *InventarioService) Productos() []model.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()
	productos := make([]model.Producto, len(s.productos))
	copy(productos, s.productos)
	return productos
}
