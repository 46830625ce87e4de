package models

import (
	"time"
)

// ElectronicsDevice is a non-router hardware item in the shop (phones,
// MiFis, accessories).
type ElectronicsDevice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string  `gorm:"not null" json:"name"`
	Description    string  `gorm:"type:text" json:"description"`
	Price          float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`
	Category       string  `gorm:"default:'General'" json:"category"`
	Specifications string  `gorm:"type:text" json:"specifications"`
	StockQuantity  int     `gorm:"default:0" json:"stockQuantity"`
	IsAvailable    bool    `gorm:"default:true" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
