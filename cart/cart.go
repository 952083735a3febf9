// Package cart implements the shopping cart state machine: an ordered set
// of product lines with a derived total, driven by a closed set of actions
// through a pure reducer and persisted write-through after every
// transition.
package cart

import (
	"errors"

	"github.com/tradewind-labs/storefront/catalog"
)

// ErrQuantityInvalid rejects Add calls with a non-positive quantity.
// Zero-stock products must not become cart lines.
var ErrQuantityInvalid = errors.New("cart: quantity must be positive")

// Line is one product/quantity pairing. Product is a snapshot taken at add
// time, not a live catalog reference. Quantity is always positive; a line
// whose quantity would drop to zero is removed instead.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   catalog.Product `json:"product"`
}

// State is the full cart value. Total is derived from Lines on every
// transition and is never read back from storage.
type State struct {
	Lines []Line
	Total float64
}

// ItemCount sums the line quantities.
func (s State) ItemCount() int {
	n := 0
	for _, line := range s.Lines {
		n += line.Quantity
	}
	return n
}

// action is the closed transition set. Reducing an action never mutates the
// prior state; each case builds a fresh line slice.
type action interface{ isAction() }

type addItem struct {
	product  catalog.Product
	quantity int
}

type removeItem struct{ productID string }

type updateQuantity struct {
	productID string
	quantity  int
}

type clearCart struct{}

type loadLines struct{ lines []Line }

func (addItem) isAction()        {}
func (removeItem) isAction()     {}
func (updateQuantity) isAction() {}
func (clearCart) isAction()      {}
func (loadLines) isAction()      {}

func reduce(state State, act action) State {
	switch a := act.(type) {
	case addItem:
		for i, line := range state.Lines {
			if line.ProductID == a.product.ID {
				lines := cloneLines(state.Lines)
				lines[i].Quantity += a.quantity
				return State{Lines: lines, Total: computeTotal(lines)}
			}
		}
		lines := append(cloneLines(state.Lines), Line{
			ProductID: a.product.ID,
			Quantity:  a.quantity,
			Product:   a.product,
		})
		return State{Lines: lines, Total: computeTotal(lines)}

	case removeItem:
		lines := withoutLine(state.Lines, a.productID)
		return State{Lines: lines, Total: computeTotal(lines)}

	case updateQuantity:
		if a.quantity <= 0 {
			return reduce(state, removeItem{productID: a.productID})
		}
		lines := cloneLines(state.Lines)
		for i, line := range lines {
			if line.ProductID == a.productID {
				lines[i].Quantity = a.quantity
			}
		}
		return State{Lines: lines, Total: computeTotal(lines)}

	case clearCart:
		return State{}

	case loadLines:
		lines := cloneLines(a.lines)
		return State{Lines: lines, Total: computeTotal(lines)}

	default:
		return state
	}
}

func computeTotal(lines []Line) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	return append([]Line(nil), lines...)
}

func withoutLine(lines []Line, productID string) []Line {
	var out []Line
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}
