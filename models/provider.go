package models

import (
	"time"
)

// ServiceProvider is a mobile network or ISP whose plans and bundles we
// resell (Vodacom, Airtel, Halotel, ...).
type ServiceProvider struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	Plans   []DataPlan `gorm:"foreignKey:ProviderID" json:"-"`
	Bundles []Bundle   `gorm:"foreignKey:ProviderID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
