package enquiries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/pagination"
)

// ListFilter narrows and pages the admin enquiry listing.
type ListFilter struct {
	Status *enums.EnquiryStatus
	Limit  int
	Cursor *pagination.Cursor
}

// Repository is the persistence surface for contact-form enquiries.
type Repository interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	List(ctx context.Context, filter ListFilter) ([]models.Enquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.EnquiryStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an enquiry repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, enquiry *models.Enquiry) error {
	return r.db.WithContext(ctx).Create(enquiry).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&enquiry).Error; err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Enquiry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.Enquiry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.EnquiryStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Enquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Enquiry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
