package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem captures the snapshot of one configured cake within an order.
// Catalog names and prices are denormalized so later catalog edits cannot
// rewrite history.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	CakeTypeID     string    `gorm:"column:cake_type_id;not null"`
	CakeTypeName   string    `gorm:"column:cake_type_name;not null"`
	SizeID         string    `gorm:"column:size_id;not null"`
	SizeLabel      string    `gorm:"column:size_label;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	Flavor         string    `gorm:"column:flavor"`
	Filling        string    `gorm:"column:filling"`
	Frosting       string    `gorm:"column:frosting"`
	Message        *string   `gorm:"column:message"`
	DietaryTags    []string  `gorm:"column:dietary_tags;type:jsonb;serializer:json"`
	MockupURL      *string   `gorm:"column:mockup_url"`
	MockupApproved bool      `gorm:"column:mockup_approved;not null;default:false"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	TotalCents     int       `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
