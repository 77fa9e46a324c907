package models

// MenuCategory groups menu items under a unique display name.
type MenuCategory struct {
	ID    uint       `gorm:"primaryKey"                       json:"id"`
	Name  string     `gorm:"size:255;not null;uniqueIndex"    json:"name"`
	Items []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
}

// MenuItem is one dish on the menu.
type MenuItem struct {
	ID          uint    `gorm:"primaryKey"              json:"id"`
	Name        string  `gorm:"size:255;not null"       json:"name"`
	Price       float64 `gorm:"not null;default:0"      json:"price"`
	Description string  `gorm:"type:text"               json:"description"`
	Spicy       bool    `gorm:"not null"                json:"spicy"`
	ImageURL    *string `gorm:"size:1024"               json:"image_url"`
	CategoryID  uint    `gorm:"not null;index"          json:"category_id"`
}
