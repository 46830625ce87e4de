package models

import (
	"time"
)

// DataPlan is a single data package sold under one provider.
type DataPlan struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"providerId"`

	Name         string  `gorm:"not null" json:"name"`
	DataVolume   string  `gorm:"default:'1GB'" json:"dataVolume"`
	ValidityDays int     `gorm:"default:30" json:"validityDays"`
	Price        float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`
	Description  string  `gorm:"type:text" json:"description"`
	IsActive     bool    `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
