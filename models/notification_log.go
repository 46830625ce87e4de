// models/notification_log.go
package models

import (
	"time"
)

// NotificationLog records one delivery attempt per channel, successful or
// not. The order itself only carries the coarse notified/when/how fields;
// per-channel outcomes live here.
type NotificationLog struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`

	Channel      string `gorm:"type:varchar(10)"` // email, sms
	Recipient    string `gorm:"type:varchar(255)"`
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	SentAt       time.Time

	CreatedAt time.Time
}
