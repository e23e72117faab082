// Package events names the domain events servicehub fires and their
// payloads.
package events

const (
	UserRegisteredEvent = "user.registered"
	OrderSubmittedEvent = "order.submitted"
)

type UserRegistered struct {
	UserID string
}

type OrderSubmitted struct {
	OrderID     string
	UserID      string
	ServiceType string
}
