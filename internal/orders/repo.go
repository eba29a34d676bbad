package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pequenospassos/storefront/internal/inventory"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `id, customer_name, coalesce(customer_phone,''), coalesce(customer_address,''),
	coalesce(notes,''), status, total_cents, created_at, updated_at`

// CreateOrder runs the whole checkout as one transaction: every stock
// decrement plus the order and item inserts commit together or not at all.
// Any InsufficientStockError aborts the transaction with no visible writes.
func (r *Repo) CreateOrder(ctx context.Context, d Draft) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, it := range d.Items {
		if _, err := inventory.DecrementTx(ctx, tx, it.ProductID, it.Size, it.Qty); err != nil {
			return Order{}, err
		}
	}

	orderID := uuid.NewString()
	var o Order
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, notes, status, total_cents)
		VALUES ($1, $2, nullif($3,''), nullif($4,''), nullif($5,''), 'PENDING', $6)
		RETURNING `+orderColumns,
		orderID, d.Customer.Name, d.Customer.Phone, d.Customer.Address, d.Notes, d.TotalCents,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.Notes, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	for _, it := range d.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, size, qty, price_cents)
			VALUES ($1, $2, $3, $4, $5)`,
			orderID, it.ProductID, it.Size, it.Qty, it.PriceCents,
		); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) GetOrder(ctx context.Context, id string) (Order, []Item, error) {
	var o Order
	err := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
			&o.Notes, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, nil, ErrNotFound
	}
	if err != nil {
		return Order{}, nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, product_id, size, qty, price_cents
		FROM order_items WHERE order_id=$1 ORDER BY id`, id)
	if err != nil {
		return Order{}, nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Size, &it.Qty, &it.PriceCents); err != nil {
			return Order{}, nil, err
		}
		items = append(items, it)
	}
	return o, items, rows.Err()
}

func (r *Repo) ListOrders(ctx context.Context, limit, offset int) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0, limit)
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
			&o.Notes, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus validates the transition against the current status under a
// row lock. A cancellation that compensates restocks every item and flips
// the status in the same transaction, so the ledger can never show a
// half-restocked order.
func (r *Repo) UpdateStatus(ctx context.Context, id string, next Status) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current Status
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(current, next) {
		return Order{}, &InvalidTransitionError{From: current, To: next}
	}

	if next == StatusCanceled && RestocksOnCancel(current) {
		if err := restockItems(ctx, tx, id); err != nil {
			return Order{}, err
		}
	}

	var o Order
	err = tx.QueryRow(ctx, `
		UPDATE orders SET status=$2, updated_at=now() WHERE id=$1
		RETURNING `+orderColumns, id, next,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerPhone, &o.CustomerAddress,
		&o.Notes, &o.Status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return Order{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

func restockItems(ctx context.Context, tx pgx.Tx, orderID string) error {
	rows, err := tx.Query(ctx, `SELECT product_id, size, qty FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return err
	}
	type line struct {
		productID string
		size      string
		qty       int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.size, &l.qty); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := inventory.IncrementTx(ctx, tx, l.productID, l.size, l.qty); err != nil {
			// A product deleted since the order was placed has nothing to
			// restock; everything else aborts the compensation.
			if errors.Is(err, inventory.ErrProductNotFound) {
				continue
			}
			return fmt.Errorf("restock order %s: %w", orderID, err)
		}
	}
	return nil
}

// ApprovedOrders returns the most recent approved orders with their sold
// items, joined against product names for reporting.
func (r *Repo) ApprovedOrders(ctx context.Context, limit int) ([]ApprovedOrder, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, total_cents FROM orders
		WHERE status='APPROVED'
		ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ApprovedOrder
	byID := map[string]int{}
	ids := make([]string, 0, limit)
	for rows.Next() {
		var ao ApprovedOrder
		if err := rows.Scan(&ao.ID, &ao.TotalCents); err != nil {
			return nil, err
		}
		byID[ao.ID] = len(out)
		ids = append(ids, ao.ID)
		out = append(out, ao)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	itemRows, err := r.DB.Query(ctx, `
		SELECT i.order_id, i.product_id, coalesce(p.name, ''), i.qty
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var si SoldItem
		if err := itemRows.Scan(&orderID, &si.ProductID, &si.ProductName, &si.Qty); err != nil {
			return nil, err
		}
		if idx, ok := byID[orderID]; ok {
			out[idx].Items = append(out[idx].Items, si)
		}
	}
	return out, itemRows.Err()
}
