package model

import (
	"time"
)

// Marker categories.
const (
	// CategoryLarge covers household appliances (fridges, washing machines).
	CategoryLarge = "large"
	// CategorySmall covers TVs, ovens and similar equipment.
	CategorySmall = "small"
	// CategoryDevices covers phones, laptops and other electronics.
	CategoryDevices = "devices"
)

// ValidCategories lists the accepted marker categories in display order.
var ValidCategories = []string{CategoryLarge, CategorySmall, CategoryDevices}

// Marker represents an e-waste disposal location
type Marker struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Lat      float64 `json:"lat" gorm:"not null"`
	Lng      float64 `json:"lng" gorm:"not null"`
	State    string  `json:"state" gorm:"size:100;not null"`
	City     string  `json:"city" gorm:"size:100;not null"`
	Locality string  `json:"locality" gorm:"size:200;not null"`
	Category string  `json:"category" gorm:"size:20;not null"`
	Contact  string  `json:"contact" gorm:"size:200;not null"`
	// IsActive: true = operational, false = shut down
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

func (Marker) TableName() string {
	return "markers"
}

// IsValidCategory reports whether the given category is one of the
// accepted marker categories.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
