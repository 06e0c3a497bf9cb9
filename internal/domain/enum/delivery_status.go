package enum

// DeliveryStatus represents the delivery lifecycle of a purchase order.
// It is set by user action and never derived from payment figures.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusInTransit DeliveryStatus = "in-transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// IsValid checks if the delivery status is a known value
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo reports whether a delivery status change is allowed.
// Delivery moves forward only: pending -> in-transit -> delivered.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	order := map[DeliveryStatus]int{
		DeliveryStatusPending:   0,
		DeliveryStatusInTransit: 1,
		DeliveryStatusDelivered: 2,
	}
	from, ok := order[s]
	if !ok {
		return false
	}
	to, ok := order[target]
	if !ok {
		return false
	}
	return to > from
}

func (s DeliveryStatus) String() string {
	return string(s)
}
