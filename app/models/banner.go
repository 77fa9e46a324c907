package models

import "time"

// Banner is a short announcement on the home page. Only active banners are
// shown publicly; inactive ones are kept for later.
type Banner struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Active    bool      `gorm:"not null;index"    json:"active"` // no gorm default: false must persist
	CreatedAt time.Time `json:"created_at"`
}
