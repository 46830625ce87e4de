package models

import (
	"time"
)

type RouterProduct struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string  `gorm:"not null" json:"name"`
	Description    string  `gorm:"type:text" json:"description"`
	Price          float64 `gorm:"type:decimal(10,2);default:0.0" json:"price"`
	Specifications string  `gorm:"type:text" json:"specifications"`
	IsAvailable    bool    `gorm:"default:true" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
