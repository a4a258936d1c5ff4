package model

import (
	"time"
)

// Billboard is a promotional banner. Categories reference it.
type Billboard struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Label     string    `json:"label" gorm:"type:varchar(255);not null"`
	ImageURL  string    `json:"image_url" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category groups products and is displayed with its billboard.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	StoreID     string    `json:"store_id" gorm:"type:uuid;index;not null"`
	BillboardID string    `json:"billboard_id" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Size is a catalog dimension, e.g. name "Medium" with value "M".
type Size struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Color is a catalog dimension, e.g. name "Red" with swatch value "#FF0000".
type Color struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	StoreID   string    `json:"store_id" gorm:"type:uuid;index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Value     string    `json:"value" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
