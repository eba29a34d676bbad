package orders

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusApproved       Status = "APPROVED"
	StatusPreparing      Status = "PREPARING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCanceled       Status = "CANCELED"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:        {StatusApproved: true, StatusCanceled: true},
	StatusApproved:       {StatusPreparing: true, StatusOutForDelivery: true, StatusDelivered: true, StatusCanceled: true},
	StatusPreparing:      {StatusOutForDelivery: true, StatusDelivered: true},
	StatusOutForDelivery: {StatusDelivered: true},
	StatusDelivered:      {},
	StatusCanceled:       {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

// RestocksOnCancel reports whether canceling from the given state returns the
// order's items to stock. Stock is decremented at creation, so every
// cancellation of a live order compensates.
func RestocksOnCancel(from Status) bool {
	return from == StatusPending || from == StatusApproved
}
