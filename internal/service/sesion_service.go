package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sripos/internal/dto"
	"sripos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PosAPI is the slice of the tenant API the session manager consumes.
type PosAPI interface {
	GetTurnoActivo(ctx context.Context) (*dto.TurnoActivoResponse, error)
	AbrirTurno(ctx context.Context, sucursalID int64) (*model.Turno, error)
	CerrarTurno(ctx context.Context, req dto.CerrarTurnoRequest) error
	GetProductos(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	GetPresentaciones(ctx context.Context, productoID int64) ([]model.Presentacion, error)
	CrearFacturaPOS(ctx context.Context, req dto.FacturaPOSRequest) (*dto.FacturaPOSResponse, error)
	GetClientes(ctx context.Context, search string) ([]model.Cliente, error)
	CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error)
	GetSucursales(ctx context.Context) ([]model.Sucursal, error)
}

// montoMaxConsumidorFinal is the SRI threshold above which a sale needs an
// identified customer.
var montoMaxConsumidorFinal = decimal.NewFromInt(50)

var (
	ErrSinTurno                = errors.New("no hay un turno abierto")
	ErrTurnoYaAbierto          = errors.New("ya existe un turno abierto")
	ErrSucursalRequerida       = errors.New("debe seleccionar una sucursal")
	ErrSinStock                = errors.New("el producto no tiene stock disponible")
	ErrStockInsuficiente       = errors.New("stock insuficiente")
	ErrSinPresentaciones       = errors.New("el producto no tiene presentaciones de venta")
	ErrCarritoVacio            = errors.New("el carrito está vacío")
	ErrClienteRequerido        = errors.New("ventas mayores a $50 requieren un cliente identificado")
	ErrObservacionesRequeridas = errors.New("desvío crítico: se requieren observaciones")
)

// SesionService owns the cashier's working set: the active turno, the cart
// scoped to it and the customer selection. All transitions run under one
// mutex so interleaved UI events read the latest cart state.
type SesionService struct {
	api      PosAPI
	pageSize int

	mu          sync.Mutex
	turno       *model.Turno
	carrito     model.Carrito
	cliente     model.Cliente
	productos   []model.Producto
	sucursales  []model.Sucursal
	ventasTurno MontosPorMetodo
	salidasCaja decimal.Decimal
	loadToken   uint64
}

func NewSesionService(api PosAPI, pageSize int) *SesionService {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &SesionService{
		api:      api,
		pageSize: pageSize,
		cliente:  model.ConsumidorFinal(),
	}
}

// ── Turno ─────────────────────────────────────────────────────────────────────

// VerificarTurno detects an already-open turno at startup. With one, the
// product list for its sucursal is loaded; without one, the sucursal list is
// fetched so the caller can open the selection dialog.
func (s *SesionService) VerificarTurno(ctx context.Context) (bool, error) {
	resp, err := s.api.GetTurnoActivo(ctx)
	if err != nil {
		return false, err
	}

	if resp.Activo() && resp.Turno() != nil {
		s.mu.Lock()
		s.turno = resp.Turno()
		s.mu.Unlock()
		if err := s.recargarProductos(ctx, ""); err != nil {
			log.Warn().Err(err).Msg("sesion: no se pudieron cargar los productos del turno")
		}
		return true, nil
	}

	sucursales, err := s.api.GetSucursales(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("sesion: no se pudieron cargar las sucursales")
	} else {
		s.mu.Lock()
		s.sucursales = sucursales
		s.mu.Unlock()
	}
	return false, nil
}

// AbrirTurno opens a turno in the given sucursal. On failure the session is
// left unchanged — no partial turno exists client-side.
func (s *SesionService) AbrirTurno(ctx context.Context, sucursalID int64) error {
	if sucursalID <= 0 {
		return ErrSucursalRequerida
	}
	s.mu.Lock()
	if s.turno != nil {
		s.mu.Unlock()
		return ErrTurnoYaAbierto
	}
	s.mu.Unlock()

	turno, err := s.api.AbrirTurno(ctx, sucursalID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.turno = turno
	s.ventasTurno = MontosPorMetodo{}
	s.salidasCaja = decimal.Zero
	s.mu.Unlock()

	if err := s.recargarProductos(ctx, ""); err != nil {
		log.Warn().Err(err).Msg("sesion: no se pudieron cargar los productos del turno")
	}
	return nil
}

// DeclaracionCierre carries the counted totals and withdrawals for the close
// reconciliation.
type DeclaracionCierre struct {
	Efectivo      decimal.Decimal
	Tarjeta       decimal.Decimal
	Transferencia decimal.Decimal
	Salidas       []dto.SalidaCaja
	Observaciones *string
}

// DeclaracionSimple declares the turno's expected totals unchanged, for call
// sites that have no counted declaration.
func (s *SesionService) DeclaracionSimple() DeclaracionCierre {
	s.mu.Lock()
	defer s.mu.Unlock()
	esperado := s.montosEsperados()
	return DeclaracionCierre{
		Efectivo:      esperado.Efectivo,
		Tarjeta:       esperado.Tarjeta,
		Transferencia: esperado.Transferencia,
	}
}

// CerrarTurno reconciles the declaration against the turno's accumulated
// sales, submits the close and resets cart and customer to their defaults.
// A crítico variance is rejected until observaciones are supplied.
func (s *SesionService) CerrarTurno(ctx context.Context, decl DeclaracionCierre) (*Arqueo, error) {
	s.mu.Lock()
	if s.turno == nil {
		s.mu.Unlock()
		return nil, ErrSinTurno
	}
	esperado := s.montosEsperados()
	for _, salida := range decl.Salidas {
		esperado.Efectivo = esperado.Efectivo.Sub(salida.Monto)
	}
	s.mu.Unlock()

	arqueo := CalcularArqueo(esperado, MontosPorMetodo{
		Efectivo:      decl.Efectivo,
		Tarjeta:       decl.Tarjeta,
		Transferencia: decl.Transferencia,
	})
	if arqueo.Desvio.Clasificacion == DesvioCritico &&
		(decl.Observaciones == nil || *decl.Observaciones == "") {
		return nil, ErrObservacionesRequeridas
	}

	err := s.api.CerrarTurno(ctx, dto.CerrarTurnoRequest{
		EfectivoTotal:      decl.Efectivo,
		TarjetaTotal:       decl.Tarjeta,
		TransferenciaTotal: decl.Transferencia,
		SalidasCaja:        decl.Salidas,
		Observaciones:      decl.Observaciones,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.turno = nil
	s.carrito = nil
	s.cliente = model.ConsumidorFinal()
	s.productos = nil
	s.ventasTurno = MontosPorMetodo{}
	s.salidasCaja = decimal.Zero
	s.mu.Unlock()

	log.Info().
		Str("clasificacion", arqueo.Desvio.Clasificacion).
		Str("desvio", arqueo.Desvio.Monto.String()).
		Msg("sesion: turno cerrado")
	return &arqueo, nil
}

// montosEsperados must be called under s.mu.
func (s *SesionService) montosEsperados() MontosPorMetodo {
	esperado := s.ventasTurno
	esperado.Efectivo = esperado.Efectivo.Sub(s.salidasCaja)
	return esperado
}

// ── Carrito ───────────────────────────────────────────────────────────────────

// AgregarAlCarrito adds one unit of a product, pricing it through its first
// presentation. The cart quantity for the product may never exceed its known
// stock; a rejected add leaves the cart unchanged.
func (s *SesionService) AgregarAlCarrito(ctx context.Context, productoID int64) error {
	s.mu.Lock()
	if s.turno == nil {
		s.mu.Unlock()
		return ErrSinTurno
	}
	producto, ok := s.buscarProducto(productoID)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("producto %d no está en la lista cargada", productoID)
	}
	if producto.Stock <= 0 {
		return fmt.Errorf("%w: %s", ErrSinStock, producto.Nombre)
	}

	presentaciones, err := s.api.GetPresentaciones(ctx, productoID)
	if err != nil {
		return err
	}
	if len(presentaciones) == 0 {
		return fmt.Errorf("%w: %s", ErrSinPresentaciones, producto.Nombre)
	}
	presentacion := presentaciones[0]

	// The cart is re-read here, not reused from before the lookup: rapid adds
	// with in-flight presentation fetches must not lose each other's updates.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.carrito.CantidadDe(productoID)+1 > producto.Stock {
		return fmt.Errorf("%w: %s (stock %d)", ErrStockInsuficiente, producto.Nombre, producto.Stock)
	}

	for i := range s.carrito {
		item := &s.carrito[i]
		if item.Producto.ID == productoID && item.Presentacion.ID == presentacion.ID {
			item.Cantidad++
			item.PrecioUnitario = presentacion.Precio
			item.Recalcular()
			return nil
		}
	}

	item := model.ItemCarrito{
		LineaID:        uuid.New(),
		Producto:       producto,
		Presentacion:   presentacion,
		Cantidad:       1,
		PrecioUnitario: presentacion.Precio,
	}
	item.Recalcular()
	s.carrito = append(s.carrito, item)
	return nil
}

// QuitarDelCarrito removes a line by position. There is no decrement.
func (s *SesionService) QuitarDelCarrito(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.carrito) {
		return fmt.Errorf("línea %d fuera de rango", index)
	}
	s.carrito = append(s.carrito[:index], s.carrito[index+1:]...)
	return nil
}

// ── Cliente ───────────────────────────────────────────────────────────────────

// BuscarClientes no-ops below 3 characters.
func (s *SesionService) BuscarClientes(ctx context.Context, term string) ([]model.Cliente, error) {
	if len([]rune(term)) < 3 {
		return nil, nil
	}
	return s.api.GetClientes(ctx, term)
}

// CrearCliente registers a new customer and selects it immediately.
func (s *SesionService) CrearCliente(ctx context.Context, req dto.CrearClienteRequest) (*model.Cliente, error) {
	if err := validarStruct(req); err != nil {
		return nil, err
	}
	cliente, err := s.api.CrearCliente(ctx, req)
	if err != nil {
		return nil, err
	}
	s.SeleccionarCliente(*cliente)
	return cliente, nil
}

func (s *SesionService) SeleccionarCliente(c model.Cliente) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cliente = c
}

// ── Cobro ─────────────────────────────────────────────────────────────────────

// Cobrar submits the cart as a POS invoice. The consumidor-final threshold is
// re-checked on every invocation, before any network call. A failed submit
// leaves the cart intact for retry.
func (s *SesionService) Cobrar(ctx context.Context) (*dto.FacturaPOSResponse, error) {
	s.mu.Lock()
	if s.turno == nil {
		s.mu.Unlock()
		return nil, ErrSinTurno
	}
	if len(s.carrito) == 0 {
		s.mu.Unlock()
		return nil, ErrCarritoVacio
	}
	total := s.carrito.Total()
	cliente := s.cliente
	if total.GreaterThan(montoMaxConsumidorFinal) && cliente.EsConsumidorFinal() {
		s.mu.Unlock()
		return nil, ErrClienteRequerido
	}

	items := make([]dto.ItemFactura, 0, len(s.carrito))
	for _, item := range s.carrito {
		items = append(items, dto.ItemFactura{
			Producto:       item.Producto.ID,
			Presentacion:   item.Presentacion.ID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	s.mu.Unlock()

	resp, err := s.api.CrearFacturaPOS(ctx, dto.FacturaPOSRequest{
		Cliente:         cliente,
		Items:           items,
		FormaPago:       dto.FormaPagoEfectivo,
		ReferenciaLocal: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.ventasTurno.Efectivo = s.ventasTurno.Efectivo.Add(total)
	s.carrito = nil
	s.cliente = model.ConsumidorFinal()
	s.mu.Unlock()

	log.Info().
		Str("estado_sri", resp.EstadoSRI).
		Str("clave_acceso", resp.ClaveAcceso).
		Msg("sesion: factura emitida")

	if err := s.recargarProductos(ctx, ""); err != nil {
		log.Warn().Err(err).Msg("sesion: no se pudo recargar la lista de productos")
	}
	return resp, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

// BuscarProductos reloads the stock-aware product list for the turno's
// sucursal, filtered by term.
func (s *SesionService) BuscarProductos(ctx context.Context, term string) error {
	return s.recargarProductos(ctx, term)
}

// recargarProductos applies the result only if no newer load has started in
// the meantime.
func (s *SesionService) recargarProductos(ctx context.Context, search string) error {
	s.mu.Lock()
	if s.turno == nil {
		s.mu.Unlock()
		return nil
	}
	sucursal := s.turno.Sucursal
	s.loadToken++
	token := s.loadToken
	s.mu.Unlock()

	activo := true
	productos, err := s.api.GetProductos(ctx, dto.ProductoFilter{
		Search:   search,
		Sucursal: &sucursal,
		Activo:   &activo,
		PageSize: s.pageSize,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.loadToken {
		return nil
	}
	s.productos = productos
	return nil
}

// buscarProducto must be called under s.mu.
func (s *SesionService) buscarProducto(productoID int64) (model.Producto, bool) {
	for _, p := range s.productos {
		if p.ID == productoID {
			return p, true
		}
	}
	return model.Producto{}, false
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *SesionService) Turno() *model.Turno {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.turno == nil {
		return nil
	}
	turno := *s.turno
	return &turno
}

func (s *SesionService) Carrito() model.Carrito {
	s.mu.Lock()
	defer s.mu.Unlock()
	carrito := make(model.Carrito, len(s.carrito))
	copy(carrito, s.carrito)
	return carrito
}

func (s *SesionService) TotalCarrito() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.carrito.Total()
}

func (s *SesionService) Cliente() model.Cliente {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cliente
}

func (s *SesionService) Productos() []model.Producto {
	s.mu.Lock()
	defer s.mu.Unlock()
	productos := make([]model.Producto, len(s.productos))
	copy(productos, s.productos)
	return productos
}

func (s *SesionService) Sucursales() []model.Sucursal {
	s.mu.Lock()
	defer s.mu.Unlock()
	sucursales := make([]model.Sucursal, len(s.sucursales))
	copy(sucursales, s.sucursales)
	return sucursales
}
