package models

import (
	"time"
)

// OrderTracking lets a customer query order status with an unguessable
// token instead of logging in. Created lazily: on guest tracking signup or
// on the first admin tracking update, whichever comes first. The token is
// generated once and never changes.
//
// Email and phone are copied from the order at creation time so identity
// can be confirmed even if the order record is later edited.
type OrderTracking struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"uniqueIndex;not null" json:"orderId"`

	Token         string `gorm:"uniqueIndex;not null" json:"token"`
	CustomerEmail string `gorm:"not null" json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	IsActive      bool   `gorm:"default:true" json:"isActive"`

	Updates []OrderTrackingUpdate `gorm:"foreignKey:TrackingID" json:"updates"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderTrackingUpdate is one entry in the tracking journal. Entries are
// append-only: nothing in the codebase updates or deletes them.
type OrderTrackingUpdate struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	TrackingID uint        `gorm:"index;not null" json:"-"`
	Status     OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note       string      `gorm:"type:text" json:"note"`
	CreatedAt  time.Time   `json:"createdAt"`
}
