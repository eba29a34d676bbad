package orders

import (
	"context"
	"regexp"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the persistence boundary of the engine. The pgx implementation is
// Repo; tests substitute an in-memory fake with the same locking semantics.
type Store interface {
	CreateOrder(ctx context.Context, d Draft) (Order, error)
	GetOrder(ctx context.Context, id string) (Order, []Item, error)
	ListOrders(ctx context.Context, limit, offset int) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, next Status) (Order, error)
	ApprovedOrders(ctx context.Context, limit int) ([]ApprovedOrder, error)
}

// Loose on purpose: customers type phone numbers with spaces, dashes and
// parentheses; the number only has to be plausible, not canonical.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9()\-\s.]{6,19}$`)

const (
	maxPageSize       = 100
	defaultPageSize   = 20
	dashboardMaxOrder = 200
)

type Service struct {
	Store Store
	Log   *zap.Logger
}

// Checkout converts a cart into exactly one PENDING order, or none at all.
// Structural validation happens before any database work; items are sorted
// by (product_id, size) so concurrent checkouts acquire product row locks in
// the same order regardless of submission order.
func (s *Service) Checkout(ctx context.Context, cust Customer, notes string, items []ItemInput) (Order, error) {
	if err := validateCustomer(cust); err != nil {
		return Order{}, err
	}
	if len(items) == 0 {
		return Order{}, &ValidationError{Field: "items", Reason: "at least one item is required"}
	}
	for _, it := range items {
		if it.ProductID == "" {
			return Order{}, &ValidationError{Field: "items", Reason: "product_id is required"}
		}
		if it.Size == "" {
			return Order{}, &ValidationError{Field: "items", Reason: "size is required"}
		}
		if it.Qty <= 0 {
			return Order{}, &ValidationError{Field: "items", Reason: "qty must be positive"}
		}
		if it.PriceCents < 0 {
			return Order{}, &ValidationError{Field: "items", Reason: "price_cents must be non-negative"}
		}
	}

	sorted := make([]ItemInput, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].ProductID != sorted[j].ProductID {
			return sorted[i].ProductID < sorted[j].ProductID
		}
		return sorted[i].Size < sorted[j].Size
	})

	total := 0
	for _, it := range sorted {
		total += it.Qty * it.PriceCents
	}

	o, err := s.Store.CreateOrder(ctx, Draft{
		Customer:   cust,
		Notes:      notes,
		Items:      sorted,
		TotalCents: total,
	})
	if err != nil {
		return Order{}, err
	}
	s.Log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("items", len(sorted)),
		zap.Int("total_cents", o.TotalCents),
	)
	return o, nil
}

func (s *Service) Order(ctx context.Context, id string) (Order, []Item, error) {
	if uuid.Validate(id) != nil {
		return Order{}, nil, ErrNotFound
	}
	return s.Store.GetOrder(ctx, id)
}

// Orders lists summaries newest first. page is 1-based; limit is clamped.
func (s *Service) Orders(ctx context.Context, limit, page int) ([]Order, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return s.Store.ListOrders(ctx, limit, (page-1)*limit)
}

// UpdateStatus advances an order through the lifecycle. The transition table
// and any compensating restock are enforced transactionally by the store.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (Order, error) {
	if uuid.Validate(id) != nil {
		return Order{}, ErrNotFound
	}
	if !ValidStatus(next) {
		return Order{}, &ValidationError{Field: "status", Reason: "unknown status " + string(next)}
	}
	o, err := s.Store.UpdateStatus(ctx, id, next)
	if err != nil {
		return Order{}, err
	}
	s.Log.Info("order status updated", zap.String("order_id", id), zap.String("status", string(next)))
	return o, nil
}

// Dashboard aggregates the most recent approved orders. An empty ledger is a
// valid zero result, not an error.
func (s *Service) Dashboard(ctx context.Context) (Summary, error) {
	rows, err := s.Store.ApprovedOrders(ctx, dashboardMaxOrder)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(rows), nil
}

func validateCustomer(c Customer) error {
	if c.Name == "" {
		return &ValidationError{Field: "customer.name", Reason: "name is required"}
	}
	if c.Phone != "" && !phoneRe.MatchString(c.Phone) {
		return &ValidationError{Field: "customer.phone", Reason: "not a plausible phone number"}
	}
	return nil
}
