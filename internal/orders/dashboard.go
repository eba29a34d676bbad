package orders

// SoldItem is one line of an approved order as seen by reporting, with the
// product name joined in for display.
type SoldItem struct {
	ProductID   string
	ProductName string
	Qty         int
}

type ApprovedOrder struct {
	ID         string
	TotalCents int
	Items      []SoldItem
}

type Summary struct {
	ApprovedCount  int    `json:"approved_count"`
	RevenueCents   int    `json:"approved_revenue_cents"`
	BestSellerID   string `json:"best_seller_id,omitempty"`
	BestSellerName string `json:"best_seller_name,omitempty"`
	BestSellerQty  int    `json:"best_seller_qty"`
}

// Aggregate rolls approved orders up into dashboard figures. The best seller
// is the product with the largest summed quantity; ties break to the
// lexicographically smallest product id so the report is stable.
func Aggregate(rows []ApprovedOrder) Summary {
	sum := Summary{ApprovedCount: len(rows)}
	qtyByProduct := map[string]int{}
	nameByProduct := map[string]string{}
	for _, o := range rows {
		sum.RevenueCents += o.TotalCents
		for _, it := range o.Items {
			qtyByProduct[it.ProductID] += it.Qty
			if it.ProductName != "" {
				nameByProduct[it.ProductID] = it.ProductName
			}
		}
	}
	for pid, qty := range qtyByProduct {
		if qty > sum.BestSellerQty || (qty == sum.BestSellerQty && sum.BestSellerID != "" && pid < sum.BestSellerID) {
			sum.BestSellerID = pid
			sum.BestSellerQty = qty
		}
	}
	sum.BestSellerName = nameByProduct[sum.BestSellerID]
	return sum
}
