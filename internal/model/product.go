package model

import (
	"time"
)

// Product is a sellable catalog item. It references exactly one category,
// size and color of the same store and owns its images.
type Product struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	StoreID    string    `json:"store_id" gorm:"type:uuid;index;not null"`
	CategoryID string    `json:"category_id" gorm:"type:uuid;index;not null"`
	SizeID     string    `json:"size_id" gorm:"type:uuid;index;not null"`
	ColorID    string    `json:"color_id" gorm:"type:uuid;index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	Price      float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	IsFeatured bool      `json:"is_featured" gorm:"default:false"`
	IsArchived bool      `json:"is_archived" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations, only populated by catalog reads
	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Size     *Size          `json:"size,omitempty" gorm:"foreignKey:SizeID"`
	Color    *Color         `json:"color,omitempty" gorm:"foreignKey:ColorID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductImage is an image reference owned by exactly one product.
// Position keeps the order the images were supplied in.
type ProductImage struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	ProductID string    `json:"product_id" gorm:"type:uuid;index;not null"`
	URL       string    `json:"url" gorm:"type:text;not null"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
