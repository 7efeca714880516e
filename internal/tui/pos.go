// Package tui renders the POS screen: product list, cart and the customer
// dialog, driven by the session service. All state transitions live in the
// service; this package only translates key presses into calls.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sripos/internal/dto"
	"sripos/internal/model"
	"sripos/internal/service"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type vista int

const (
	vistaPrincipal vista = iota
	vistaClientes
)

var (
	estiloTitulo   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	estiloError    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	estiloAviso    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	estiloOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	estiloCursor   = lipgloss.NewStyle().Reverse(true)
	estiloDiscreto = lipgloss.NewStyle().Faint(true)
)

// Mensajes de los comandos asíncronos.
type (
	productosMsg struct{ err error }
	agregadoMsg  struct{ err error }
	facturaMsg   struct {
		resp *dto.FacturaPOSResponse
		err  error
	}
	clientesMsg struct {
		clientes []model.Cliente
		err      error
	}
)

// Model is the bubbletea model of the POS view.
type Model struct {
	ctx    context.Context
	sesion *service.SesionService
	keys   keyMap

	vista           vista
	busqueda        textinput.Model
	busquedaCliente textinput.Model
	clientes        []model.Cliente
	cursor          int
	cursorCliente   int
	cursorCarrito   int
	enCarrito       bool

	aviso string
	fallo string
}

func New(ctx context.Context, sesion *service.SesionService) Model {
	busqueda := textinput.New()
	busqueda.Placeholder = "buscar producto…"
	busqueda.CharLimit = 64

	busquedaCliente := textinput.New()
	busquedaCliente.Placeholder = "cédula / RUC / razón social (mín. 3)"
	busquedaCliente.CharLimit = 64

	return Model{
		ctx:             ctx,
		sesion:          sesion,
		keys:            newKeyMap(),
		busqueda:        busqueda,
		busquedaCliente: busquedaCliente,
	}
}

func (m Model) Init() tea.Cmd {
	return m.cargarProductos("")
}

// ── Comandos ──────────────────────────────────────────────────────────────────

func (m Model) cargarProductos(term string) tea.Cmd {
	return func() tea.Msg {
		return productosMsg{err: m.sesion.BuscarProductos(m.ctx, term)}
	}
}

func (m Model) agregar(productoID int64) tea.Cmd {
	return func() tea.Msg {
		return agregadoMsg{err: m.sesion.AgregarAlCarrito(m.ctx, productoID)}
	}
}

func (m Model) cobrar() tea.Cmd {
	return func() tea.Msg {
		resp, err := m.sesion.Cobrar(m.ctx)
		return facturaMsg{resp: resp, err: err}
	}
}

func (m Model) buscarClientes(term string) tea.Cmd {
	return func() tea.Msg {
		clientes, err := m.sesion.BuscarClientes(m.ctx, term)
		return clientesMsg{clientes: clientes, err: err}
	}
}

// ── Update ────────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.manejarTecla(msg)
	case productosMsg:
		if msg.err != nil {
			m.fallo = msg.err.Error()
		}
		m.cursor = 0
		return m, nil
	case agregadoMsg:
		if msg.err != nil {
			m.fallo = msg.err.Error()
		} else {
			m.fallo = ""
			m.aviso = ""
		}
		return m, nil
	case facturaMsg:
		return m.manejarFactura(msg)
	case clientesMsg:
		if msg.err != nil {
			m.fallo = msg.err.Error()
			return m, nil
		}
		m.clientes = msg.clientes
		m.cursorCliente = 0
		return m, nil
	}
	return m, nil
}

func (m Model) manejarFactura(msg facturaMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, service.ErrClienteRequerido) {
			// The threshold gate reopens the customer dialog instead of
			// submitting; the cart stays intact.
			m.vista = vistaClientes
			m.busquedaCliente.Focus()
			m.aviso = msg.err.Error()
			return m, nil
		}
		m.fallo = msg.err.Error()
		return m, nil
	}
	m.fallo = ""
	m.aviso = fmt.Sprintf("Factura emitida — SRI %s, clave %s", msg.resp.EstadoSRI, msg.resp.ClaveAcceso)
	return m, nil
}

func (m Model) manejarTecla(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Salir) {
		return m, tea.Quit
	}

	if m.vista == vistaClientes {
		return m.manejarTeclaClientes(msg)
	}

	// Function keys are matched before the focused input sees the message;
	// printable runes fall through to it untouched.
	switch {
	case key.Matches(msg, m.keys.FocusBusqueda):
		m.busqueda.Focus()
		m.enCarrito = false
		return m, nil
	case key.Matches(msg, m.keys.Cobrar):
		return m, m.cobrar()
	case key.Matches(msg, m.keys.Clientes):
		m.vista = vistaClientes
		m.busquedaCliente.Focus()
		return m, nil
	}

	if m.busqueda.Focused() {
		switch {
		case key.Matches(msg, m.keys.Agregar):
			m.busqueda.Blur()
			return m, m.cargarProductos(m.busqueda.Value())
		case key.Matches(msg, m.keys.Cancelar):
			m.busqueda.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.busqueda, cmd = m.busqueda.Update(msg)
		return m, cmd
	}

	productos := m.sesion.Productos()
	carrito := m.sesion.Carrito()
	switch {
	case key.Matches(msg, m.keys.Arriba):
		if m.enCarrito {
			if m.cursorCarrito > 0 {
				m.cursorCarrito--
			}
		} else if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Abajo):
		if m.enCarrito {
			if m.cursorCarrito < len(carrito)-1 {
				m.cursorCarrito++
			}
		} else if m.cursor < len(productos)-1 {
			m.cursor++
		}
	case msg.String() == "tab":
		m.enCarrito = !m.enCarrito
	case key.Matches(msg, m.keys.Agregar):
		if !m.enCarrito && m.cursor < len(productos) {
			return m, m.agregar(productos[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Quitar):
		if m.enCarrito && m.cursorCarrito < len(carrito) {
			if err := m.sesion.QuitarDelCarrito(m.cursorCarrito); err != nil {
				m.fallo = err.Error()
			}
			if m.cursorCarrito > 0 {
				m.cursorCarrito--
			}
		}
	}
	return m, nil
}

func (m Model) manejarTeclaClientes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancelar):
		m.vista = vistaPrincipal
		m.busquedaCliente.Blur()
		m.busquedaCliente.SetValue("")
		m.clientes = nil
		return m, nil
	case key.Matches(msg, m.keys.Arriba):
		if m.cursorCliente > 0 {
			m.cursorCliente--
		}
		return m, nil
	case key.Matches(msg, m.keys.Abajo):
		if m.cursorCliente < len(m.clientes)-1 {
			m.cursorCliente++
		}
		return m, nil
	case key.Matches(msg, m.keys.Agregar):
		if len(m.clientes) > 0 && m.cursorCliente < len(m.clientes) {
			m.sesion.SeleccionarCliente(m.clientes[m.cursorCliente])
			m.vista = vistaPrincipal
			m.busquedaCliente.Blur()
			m.busquedaCliente.SetValue("")
			m.clientes = nil
			m.aviso = "Cliente seleccionado"
			return m, nil
		}
		return m, m.buscarClientes(m.busquedaCliente.Value())
	}
	var cmd tea.Cmd
	m.busquedaCliente, cmd = m.busquedaCliente.Update(msg)
	return m, cmd
}

// ── View ──────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder

	turno := m.sesion.Turno()
	if turno == nil {
		b.WriteString(estiloTitulo.Render("POS — sin turno abierto"))
		b.WriteString("\n\nAbra un turno con: sripos turno abrir --sucursal <id>\n")
		return b.String()
	}

	b.WriteString(estiloTitulo.Render(fmt.Sprintf("POS — turno #%d · %s", turno.ID, turno.SucursalNombre)))
	b.WriteString("\n\n")

	if m.vista == vistaClientes {
		m.renderClientes(&b)
	} else {
		m.renderPrincipal(&b)
	}

	if m.fallo != "" {
		b.WriteString("\n" + estiloError.Render(m.fallo) + "\n")
	}
	if m.aviso != "" {
		b.WriteString("\n" + estiloAviso.Render(m.aviso) + "\n")
	}
	b.WriteString("\n" + estiloDiscreto.Render("F2 buscar · F9 cobrar · F10 cliente · tab carrito · ctrl+c salir") + "\n")
	return b.String()
}

func (m Model) renderPrincipal(b *strings.Builder) {
	b.WriteString(m.busqueda.View() + "\n\n")

	productos := m.sesion.Productos()
	for i, p := range productos {
		linea := fmt.Sprintf("%-30s stock %4d", recortar(p.Nombre, 30), p.Stock)
		if i == m.cursor && !m.enCarrito {
			linea = estiloCursor.Render(linea)
		}
		b.WriteString("  " + linea + "\n")
	}
	if len(productos) == 0 {
		b.WriteString(estiloDiscreto.Render("  (sin productos)") + "\n")
	}

	b.WriteString("\n" + estiloTitulo.Render("Carrito") + "\n")
	carrito := m.sesion.Carrito()
	for i, item := range carrito {
		linea := fmt.Sprintf("%-26s ×%-3d  $%s", recortar(item.Producto.Nombre, 26), item.Cantidad, item.Total.StringFixed(2))
		if i == m.cursorCarrito && m.enCarrito {
			linea = estiloCursor.Render(linea)
		}
		b.WriteString("  " + linea + "\n")
	}
	if len(carrito) == 0 {
		b.WriteString(estiloDiscreto.Render("  (vacío)") + "\n")
	}

	cliente := m.sesion.Cliente()
	b.WriteString(fmt.Sprintf("\n  Cliente: %s (%s)\n", cliente.RazonSocial, cliente.Identificacion))
	b.WriteString(estiloOK.Render(fmt.Sprintf("  TOTAL: $%s", m.sesion.TotalCarrito().StringFixed(2))) + "\n")
}

func (m Model) renderClientes(b *strings.Builder) {
	b.WriteString(estiloTitulo.Render("Buscar cliente") + "\n")
	b.WriteString(m.busquedaCliente.View() + "\n\n")
	for i, c := range m.clientes {
		linea := fmt.Sprintf("%-13s %s", c.Identificacion, recortar(c.RazonSocial, 34))
		if i == m.cursorCliente {
			linea = estiloCursor.Render(linea)
		}
		b.WriteString("  " + linea + "\n")
	}
	if len(m.clientes) == 0 {
		b.WriteString(estiloDiscreto.Render("  escriba al menos 3 caracteres y presione enter") + "\n")
	}
}

func recortar(s string, max int) string {
	runas := []rune(s)
	if len(runas) <= max {
		return s
	}
	return string(runas[:max-1]) + "…"
}
