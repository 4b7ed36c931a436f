package models

import (
	"time"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// SiteConfig is the single-row order-configuration catalog. The row is read
// once per session by the storefront and replaced wholesale by admins.
type SiteConfig struct {
	ID             int              `gorm:"column:id;primaryKey;default:1"`
	CakeTypes      []types.CakeType `gorm:"column:cake_types;type:jsonb;serializer:json"`
	Sizes          []types.CakeSize `gorm:"column:sizes;type:jsonb;serializer:json"`
	Flavors        []string         `gorm:"column:flavors;type:jsonb;serializer:json"`
	Fillings       []string         `gorm:"column:fillings;type:jsonb;serializer:json"`
	Frostings      []string         `gorm:"column:frostings;type:jsonb;serializer:json"`
	DietaryOptions []string         `gorm:"column:dietary_options;type:jsonb;serializer:json"`
	Surcharges     types.Surcharges `gorm:"column:surcharges;type:jsonb;serializer:json"`
	MinLeadDays    int              `gorm:"column:min_lead_days;not null;default:3"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the singular table used by the storefront.
func (SiteConfig) TableName() string {
	return "site_config"
}

// Catalog converts the row into the wire-facing catalog type.
func (s SiteConfig) Catalog() types.Catalog {
	return types.Catalog{
		CakeTypes:      s.CakeTypes,
		Sizes:          s.Sizes,
		Flavors:        s.Flavors,
		Fillings:       s.Fillings,
		Frostings:      s.Frostings,
		DietaryOptions: s.DietaryOptions,
		Surcharges:     s.Surcharges,
		MinLeadDays:    s.MinLeadDays,
	}
}
