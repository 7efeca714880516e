package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the POS control surface. The function-key bindings mirror the
// product's global shortcuts: F10 customer search, F9 checkout, F2 product
// search. They are matched only while the POS view is mounted, and plain
// runes are never intercepted, so typing in any field stays intact.
type keyMap struct {
	FocusBusqueda key.Binding
	Cobrar        key.Binding
	Clientes      key.Binding
	Arriba        key.Binding
	Abajo         key.Binding
	Agregar       key.Binding
	Quitar        key.Binding
	Cancelar      key.Binding
	Salir         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		FocusBusqueda: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "buscar producto")),
		Cobrar:        key.NewBinding(key.WithKeys("f9"), key.WithHelp("F9", "cobrar")),
		Clientes:      key.NewBinding(key.WithKeys("f10"), key.WithHelp("F10", "cliente")),
		Arriba:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "subir")),
		Abajo:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "bajar")),
		Agregar:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "agregar")),
		Quitar:        key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("supr", "quitar línea")),
		Cancelar:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		Salir:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "salir")),
	}
}
