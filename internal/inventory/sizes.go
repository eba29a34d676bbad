package inventory

import (
	"errors"
	"fmt"
	"strconv"
)

// SizeStock is one stock-keeping bucket of a product. A product carries an
// ordered list of these, one entry per distinct size.
type SizeStock struct {
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownSize     = errors.New("unknown size")
)

// InsufficientStockError reports which request could not be served. An
// unknown size is reported the same way with Available 0, so the caller can
// always tell the customer what to fix.
type InsufficientStockError struct {
	ProductID string
	Size      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s size %s: requested %d, available %d",
		e.ProductID, e.Size, e.Requested, e.Available)
}

// Decrement reduces the quantity of the given size by qty and returns the
// updated list plus the remaining quantity. The input slice is not modified.
// qty must be > 0; the result can never go negative.
func Decrement(sizes []SizeStock, size string, qty int) ([]SizeStock, int, error) {
	if qty <= 0 {
		return nil, 0, fmt.Errorf("decrement qty must be positive, got %d", qty)
	}
	idx := indexOf(sizes, size)
	if idx < 0 {
		return nil, 0, ErrUnknownSize
	}
	if sizes[idx].Quantity < qty {
		return nil, 0, &InsufficientStockError{Size: size, Requested: qty, Available: sizes[idx].Quantity}
	}
	out := clone(sizes)
	out[idx].Quantity -= qty
	return out, out[idx].Quantity, nil
}

// Increment adds qty to the given size, creating the entry (in size order)
// when absent. qty must be >= 0; Increment never lowers a quantity.
func Increment(sizes []SizeStock, size string, qty int) ([]SizeStock, int) {
	if qty < 0 {
		qty = 0
	}
	if idx := indexOf(sizes, size); idx >= 0 {
		out := clone(sizes)
		out[idx].Quantity += qty
		return out, out[idx].Quantity
	}
	out := clone(sizes)
	entry := SizeStock{Size: size, Quantity: qty}
	pos := len(out)
	for i := range out {
		if sizeLess(size, out[i].Size) {
			pos = i
			break
		}
	}
	out = append(out, SizeStock{})
	copy(out[pos+1:], out[pos:])
	out[pos] = entry
	return out, qty
}

func indexOf(sizes []SizeStock, size string) int {
	for i := range sizes {
		if sizes[i].Size == size {
			return i
		}
	}
	return -1
}

func clone(sizes []SizeStock) []SizeStock {
	out := make([]SizeStock, len(sizes))
	copy(out, sizes)
	return out
}

// sizeLess orders shoe sizes numerically when both parse as numbers ("8" < "10"),
// falling back to the string order otherwise.
func sizeLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
