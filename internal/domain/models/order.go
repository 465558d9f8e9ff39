package models

import "time"

// OrderStatus describes the physical handling progress of an order.
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusWashing   OrderStatus = "WASHING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
)

// OrderStatusFlow is the canonical display sequence of statuses. Transitions
// between them are intentionally unrestricted; staff jump and move backward
// to correct mistakes or when customers pick up early.
var OrderStatusFlow = []OrderStatus{StatusNew, StatusWashing, StatusReady, StatusDelivered}

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusWashing, StatusReady, StatusDelivered:
		return true
	}
	return false
}

// Customer holds the contact details captured on the intake form.
type Customer struct {
	FirstName string  `bson:"firstName" json:"firstName"`
	LastName  string  `bson:"lastName" json:"lastName"`
	Phone     string  `bson:"phone" json:"phone"`
	Telegram  *string `bson:"telegram,omitempty" json:"telegram,omitempty"`
}

// OrderDetails describes what was dropped off. Notes and pickup date are
// optional; an absent field is never persisted, so nil and "set to empty"
// stay distinguishable.
type OrderDetails struct {
	ItemCount   int       `bson:"itemCount" json:"itemCount"`
	ServiceType string    `bson:"serviceType" json:"serviceType"`
	Notes       *string   `bson:"notes,omitempty" json:"notes,omitempty"`
	PickupDate  *string   `bson:"pickupDate,omitempty" json:"pickupDate,omitempty"`
	DateIn      time.Time `bson:"dateIn" json:"dateIn"`
}

// Payment is the money sub-record of an order. Remaining is always derived.
type Payment struct {
	Total     int64 `bson:"total" json:"total"`
	Advance   int64 `bson:"advance" json:"advance"`
	Remaining int64 `bson:"remaining" json:"remaining"`
}

// Normalize recomputes the remaining balance as max(0, total-advance).
// Overpayment is not tracked; the balance simply floors at zero.
func (p *Payment) Normalize() {
	p.Remaining = p.Total - p.Advance
	if p.Remaining < 0 {
		p.Remaining = 0
	}
}

// Settled reports whether nothing is owed.
func (p Payment) Settled() bool {
	return p.Remaining == 0
}

// Order is a single laundry drop-off, owned by exactly one company.
type Order struct {
	ID        string       `bson:"_id" json:"id"`
	CompanyID string       `bson:"companyId" json:"companyId"`
	Customer  Customer     `bson:"customer" json:"customer"`
	Details   OrderDetails `bson:"details" json:"details"`
	Payment   Payment      `bson:"payment" json:"payment"`
	Status    OrderStatus  `bson:"status" json:"status"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
}

// CanSettleRemaining reports whether the "clear remaining balance" action is
// available: only while the order sits at READY with money still owed.
func (o Order) CanSettleRemaining() bool {
	return o.Status == StatusReady && o.Payment.Remaining > 0
}
