package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemCarrito is one cart line: a product priced through one of its
// presentations. Subtotal and IVA are always recomputed from cantidad and the
// presentation's unit price, never accumulated.
type ItemCarrito struct {
	LineaID        uuid.UUID
	Producto       Producto
	Presentacion   Presentacion
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
	IVA            decimal.Decimal
	Total          decimal.Decimal
}

// Recalcular rebuilds the derived amounts from cantidad × precio unitario.
func (i *ItemCarrito) Recalcular() {
	i.Subtotal = i.PrecioUnitario.Mul(decimal.NewFromInt(int64(i.Cantidad)))
	i.IVA = i.Subtotal.Mul(i.Producto.PorcentajeIVA).Div(decimal.NewFromInt(100)).Round(2)
	i.Total = i.Subtotal.Add(i.IVA)
}

// Carrito is the in-memory cart scoped to the active turno.
type Carrito []ItemCarrito

// Total sums the line totals.
func (c Carrito) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Total)
	}
	return total
}

// Subtotal sums the line subtotals (before IVA).
func (c Carrito) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c {
		subtotal = subtotal.Add(item.Subtotal)
	}
	return subtotal
}

// CantidadDe returns the quantity already in the cart for a product, across
// all its lines. Used to enforce the stock ceiling.
func (c Carrito) CantidadDe(productoID int64) int {
	cantidad := 0
	for _, item := range c {
		if item.Producto.ID == productoID {
			cantidad += item.Cantidad
		}
	}
	return cantidad
}
