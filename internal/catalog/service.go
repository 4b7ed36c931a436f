package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

const (
	// SourceDatabase marks a catalog read from the site_config row.
	SourceDatabase = "database"
	// SourceDefault marks the compiled-in fallback catalog.
	SourceDefault = "default"
)

// Service serves the order-configuration catalog with a default fallback.
type Service interface {
	Catalog(ctx context.Context) (types.Catalog, string)
	Replace(ctx context.Context, catalog types.Catalog) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Catalog returns the active catalog plus its source. Database failures
// degrade to the default catalog rather than erroring, matching the
// storefront's read-only fallback mode.
func (s *service) Catalog(ctx context.Context) (types.Catalog, string) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && s.logg != nil {
			s.logg.Error(ctx, "site config read failed, serving defaults", err)
		}
		return DefaultCatalog(), SourceDefault
	}
	return row.Catalog(), SourceDatabase
}

// Replace validates and stores a full catalog as the new site_config row.
func (s *service) Replace(ctx context.Context, catalog types.Catalog) error {
	if err := validateCatalog(catalog); err != nil {
		return err
	}

	row := &models.SiteConfig{
		CakeTypes:      catalog.CakeTypes,
		Sizes:          catalog.Sizes,
		Flavors:        catalog.Flavors,
		Fillings:       catalog.Fillings,
		Frostings:      catalog.Frostings,
		DietaryOptions: catalog.DietaryOptions,
		Surcharges:     catalog.Surcharges,
		MinLeadDays:    catalog.MinLeadDays,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store site config")
	}
	return nil
}

func validateCatalog(catalog types.Catalog) error {
	details := map[string]string{}
	if len(catalog.CakeTypes) == 0 {
		details["cake_types"] = "at least one cake type is required"
	}
	if len(catalog.Sizes) == 0 {
		details["sizes"] = "at least one size is required"
	}
	for _, ct := range catalog.CakeTypes {
		if ct.ID == "" || ct.Name == "" {
			details["cake_types"] = "cake types need an id and name"
		}
		if ct.BasePriceCents < 0 {
			details["cake_types"] = "base prices cannot be negative"
		}
	}
	for _, size := range catalog.Sizes {
		if size.ID == "" || size.Label == "" {
			details["sizes"] = "sizes need an id and label"
		}
		if size.Multiplier <= 0 {
			details["sizes"] = "size multipliers must be positive"
		}
	}
	if catalog.Surcharges.DeliveryFeeCents < 0 || catalog.Surcharges.DietaryFeePerItemCents < 0 || catalog.Surcharges.FondantFeeCents < 0 {
		details["surcharges"] = "surcharges cannot be negative"
	}
	if catalog.MinLeadDays < 0 {
		details["min_lead_days"] = "minimum lead days cannot be negative"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid catalog").WithDetails(details)
	}
	return nil
}
