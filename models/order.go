package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
//
// Intended flow: pending -> confirmed -> processing -> shipped -> delivered,
// with cancelled reachable from any non-terminal state. Transitions are not
// enforced here beyond enum membership: support regularly moves orders
// backward to undo mistaken updates, so the admin tooling is the place to
// tighten the graph if that ever changes.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

var statusDisplay = map[OrderStatus]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

// Valid reports whether s is a recognized status value.
func (s OrderStatus) Valid() bool {
	_, ok := statusDisplay[s]
	return ok
}

// Display returns the human-readable form used in notifications and the
// public tracking page.
func (s OrderStatus) Display() string {
	if d, ok := statusDisplay[s]; ok {
		return d
	}
	return string(s)
}

// Terminal reports whether no further transition is expected from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ServiceType identifies which part of the catalog an order is for.
type ServiceType string

const (
	ServiceDataPlan    ServiceType = "data_plan"
	ServiceBundle      ServiceType = "bundle"
	ServiceRouter      ServiceType = "router"
	ServiceElectronics ServiceType = "electronics"
)

var serviceTypeDisplay = map[ServiceType]string{
	ServiceDataPlan:    "Data Plan",
	ServiceBundle:      "Bundle",
	ServiceRouter:      "Router",
	ServiceElectronics: "Electronics Device",
}

func (t ServiceType) Valid() bool {
	_, ok := serviceTypeDisplay[t]
	return ok
}

func (t ServiceType) Display() string {
	if d, ok := serviceTypeDisplay[t]; ok {
		return d
	}
	return string(t)
}

// NotificationMethod selects the channel(s) for a customer notification.
type NotificationMethod string

const (
	NotifyEmail NotificationMethod = "email"
	NotifySMS   NotificationMethod = "sms"
	NotifyBoth  NotificationMethod = "both"
)

func (m NotificationMethod) Valid() bool {
	return m == NotifyEmail || m == NotifySMS || m == NotifyBoth
}

// Order is a customer's request for a product or service. Guest orders
// (UserID nil) are a first-class state, most checkout traffic never
// creates an account.
type Order struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`

	CustomerName  string `gorm:"not null" json:"customerName"`
	CustomerEmail string `gorm:"not null;index" json:"customerEmail"`
	CustomerPhone string `gorm:"not null" json:"customerPhone"`

	ServiceType    ServiceType `gorm:"type:varchar(20);not null" json:"serviceType"`
	ProductDetails string      `gorm:"type:text;not null" json:"productDetails"`
	Quantity       int         `gorm:"default:1" json:"quantity"`
	TotalPrice     float64     `gorm:"type:decimal(10,2);default:0.0" json:"totalPrice"`

	Status         OrderStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Notes          string      `gorm:"type:text" json:"notes"`
	AdminNotes     *string     `gorm:"type:text" json:"adminNotes,omitempty"`
	TrackingNumber *string     `gorm:"uniqueIndex" json:"trackingNumber,omitempty"`

	CustomerNotified   bool               `gorm:"default:false" json:"customerNotified"`
	NotificationSentAt *time.Time         `json:"notificationSentAt,omitempty"`
	NotificationMethod NotificationMethod `gorm:"type:varchar(10)" json:"notificationMethod,omitempty"`

	// Version guards against two admins saving the same order at once.
	Version int `gorm:"default:0" json:"-"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
