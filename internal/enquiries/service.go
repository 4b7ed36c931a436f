package enquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/pagination"
)

// SubmitInput is a contact-form submission.
type SubmitInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// Detail is the API shape of a persisted enquiry.
type Detail struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Phone     *string             `json:"phone,omitempty"`
	Subject   string              `json:"subject"`
	Message   string              `json:"message"`
	Status    enums.EnquiryStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ListResult is one page of the admin enquiry listing.
type ListResult struct {
	Enquiries  []Detail `json:"enquiries"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// Service owns enquiry submission and admin triage.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Detail, error)
	List(ctx context.Context, status string, page pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Detail, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the enquiry service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("enquiry repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*Detail, error) {
	enquiry := &models.Enquiry{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  enums.EnquiryStatusNew,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		enquiry.Phone = &phone
	}

	if err := s.repo.Create(ctx, enquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store enquiry")
	}
	return toDetail(enquiry), nil
}

func (s *service) List(ctx context.Context, status string, page pagination.Params) (*ListResult, error) {
	filter := ListFilter{Limit: pagination.LimitWithBuffer(page.Limit)}

	if strings.TrimSpace(status) != "" {
		parsed, err := enums.ParseEnquiryStatus(status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").
				WithDetails(map[string]string{"status": err.Error()})
		}
		filter.Status = &parsed
	}

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor").
			WithDetails(map[string]string{"cursor": err.Error()})
	}
	filter.Cursor = cursor

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list enquiries")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	result := &ListResult{Enquiries: make([]Detail, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for i := range rows {
		result.Enquiries = append(result.Enquiries, *toDetail(&rows[i]))
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Detail, error) {
	parsed, err := enums.ParseEnquiryStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]string{"status": err.Error()})
	}

	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "enquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update enquiry status")
	}

	enquiry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load enquiry")
	}
	return toDetail(enquiry), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "enquiry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete enquiry")
	}
	return nil
}

func toDetail(enquiry *models.Enquiry) *Detail {
	return &Detail{
		ID:        enquiry.ID,
		Name:      enquiry.Name,
		Email:     enquiry.Email,
		Phone:     enquiry.Phone,
		Subject:   enquiry.Subject,
		Message:   enquiry.Message,
		Status:    enquiry.Status,
		CreatedAt: enquiry.CreatedAt,
		UpdatedAt: enquiry.UpdatedAt,
	}
}
