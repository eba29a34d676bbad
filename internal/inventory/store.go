package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// The two functions below are the only stock mutation entry points in the
// system. Both lock the product row (FOR UPDATE) so concurrent mutators of
// the same product serialize; unrelated products are unaffected. They run
// inside the caller's transaction, so a later failure in the same unit of
// work rolls the stock change back with everything else.

// DecrementTx takes qty units of the given size off the product's stock and
// returns the remaining quantity for that size.
func DecrementTx(ctx context.Context, tx pgx.Tx, productID, size string, qty int) (int, error) {
	sizes, err := lockSizes(ctx, tx, productID)
	if err != nil {
		return 0, err
	}
	updated, left, err := Decrement(sizes, size, qty)
	if err != nil {
		var ise *InsufficientStockError
		switch {
		case errors.As(err, &ise):
			ise.ProductID = productID
			return 0, ise
		case errors.Is(err, ErrUnknownSize):
			return 0, &InsufficientStockError{ProductID: productID, Size: size, Requested: qty, Available: 0}
		default:
			return 0, err
		}
	}
	if err := writeSizes(ctx, tx, productID, updated); err != nil {
		return 0, err
	}
	return left, nil
}

// IncrementTx puts qty units of the given size back, creating the size entry
// when it no longer exists on the product. Used by the compensating restock
// path only.
func IncrementTx(ctx context.Context, tx pgx.Tx, productID, size string, qty int) (int, error) {
	if qty < 0 {
		return 0, fmt.Errorf("increment qty must be non-negative, got %d", qty)
	}
	sizes, err := lockSizes(ctx, tx, productID)
	if err != nil {
		return 0, err
	}
	updated, now := Increment(sizes, size, qty)
	if err := writeSizes(ctx, tx, productID, updated); err != nil {
		return 0, err
	}
	return now, nil
}

func lockSizes(ctx context.Context, tx pgx.Tx, productID string) ([]SizeStock, error) {
	var raw []byte
	err := tx.QueryRow(ctx, `SELECT sizes FROM products WHERE id=$1 FOR UPDATE`, productID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	if err != nil {
		return nil, err
	}
	var sizes []SizeStock
	if err := json.Unmarshal(raw, &sizes); err != nil {
		return nil, fmt.Errorf("decode sizes for product %s: %w", productID, err)
	}
	return sizes, nil
}

func writeSizes(ctx context.Context, tx pgx.Tx, productID string, sizes []SizeStock) error {
	raw, err := json.Marshal(sizes)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `UPDATE products SET sizes=$2::jsonb, updated_at=now() WHERE id=$1`, productID, raw)
	return err
}
