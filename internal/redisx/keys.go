package redisx

import "time"

// Every key here is a display cache. The database stays the authority; in
// particular nothing cached is ever consulted for a stock decision.
const (
	// order_status:{order_id} -> {"status":"..."}
	KeyOrderStatus = "order_status:%s"

	// dashboard:summary -> serialized Summary
	KeyDashboard = "dashboard:summary"

	// dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLDashboard   = 30 * time.Second
	TTLDedup       = 48 * time.Hour
)
