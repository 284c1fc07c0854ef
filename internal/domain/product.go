package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Product struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string            `json:"name" gorm:"uniqueIndex;not null"`
	Slug        string            `json:"slug" gorm:"not null"`
	Description string            `json:"description"`
	Price       float64           `json:"price" gorm:"type:numeric(18,2);not null"`
	SKU         string            `json:"sku" gorm:"not null"`
	Stock       int               `json:"stock" gorm:"not null;default:0"`
	ImageURL    string            `json:"imageUrl"`
	Attributes  datatypes.JSONMap `json:"attributes,omitempty" gorm:"type:jsonb"`
	CategoryID  uuid.UUID         `json:"categoryId" gorm:"type:uuid;not null;index"`
	Category    *Category         `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
