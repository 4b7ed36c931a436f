package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
)

// Repository reads and replaces the single site_config row.
type Repository interface {
	Get(ctx context.Context) (*models.SiteConfig, error)
	Upsert(ctx context.Context, row *models.SiteConfig) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*models.SiteConfig, error) {
	var row models.SiteConfig
	if err := r.db.WithContext(ctx).Where("id = ?", 1).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Upsert(ctx context.Context, row *models.SiteConfig) error {
	row.ID = 1
	return r.db.WithContext(ctx).Save(row).Error
}
