package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Bundle is a discounted package of data plans, optionally with hardware,
// sold under one provider.
type Bundle struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"providerId"`

	Name               string  `gorm:"not null" json:"name"`
	TotalDataVolume    string  `json:"totalDataVolume"`
	TotalPrice         float64 `gorm:"type:decimal(10,2);default:0.0" json:"totalPrice"`
	DiscountPercentage float64 `gorm:"type:decimal(5,2);default:0.0" json:"discountPercentage"`
	Description        string  `gorm:"type:text" json:"description"`
	Features           JSONB   `gorm:"type:jsonb;default:'{}'" json:"features"`
	IsActive           bool    `gorm:"default:true" json:"isActive"`
	IsFeatured         bool    `gorm:"default:false" json:"isFeatured"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActualPrice applies the bundle discount to the list price.
func (b *Bundle) ActualPrice() float64 {
	return b.TotalPrice * (1 - b.DiscountPercentage/100)
}

// Custom JSONB type for bundle feature lists
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
