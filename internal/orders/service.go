package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/pricing"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/wizard"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/pagination"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns order submission and the admin order operations.
type Service interface {
	Submit(ctx context.Context, draftID string) (*Detail, error)
	Get(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context, status string, page pagination.Params) (*ListResult, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Detail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	All(ctx context.Context) ([]models.Order, error)
}

type service struct {
	repo    Repository
	drafts  wizard.Store
	catalog catalog.Service
	tx      TxRunner
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the order service.
func NewService(repo Repository, drafts wizard.Store, catalogSvc catalog.Service, tx TxRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft store is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	return &service{
		repo:    repo,
		drafts:  drafts,
		catalog: catalogSvc,
		tx:      tx,
		logg:    logg,
		now:     time.Now,
	}, nil
}

// Submit turns a completed draft into a persisted order. The total is always
// recomputed server-side from the catalog, never taken from the draft, and the
// order plus its item snapshots commit in one transaction.
func (s *service) Submit(ctx context.Context, draftID string) (*Detail, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	cat, _ := s.catalog.Catalog(ctx)
	if err := wizard.ValidateForSubmit(draft, cat, s.now()); err != nil {
		return nil, err
	}

	order, err := s.buildOrder(draft, cat)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order")
	}

	// The draft is spent. Deletion failure only risks a dangling redis key,
	// which the TTL cleans up, so it never fails the submission.
	if err := s.drafts.Delete(ctx, draftID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "discard submitted draft failed")
	}

	return toDetail(order), nil
}

func (s *service) buildOrder(draft *wizard.Draft, cat types.Catalog) (*models.Order, error) {
	method, err := enums.ParseDeliveryMethod(draft.Delivery.Method)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").
			WithDetails(map[string]string{"delivery.method": "choose delivery or pickup"})
	}
	deliveryDate, err := time.Parse(wizard.DeliveryDateLayout, draft.Delivery.Date)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").
			WithDetails(map[string]string{"delivery.date": "date must be formatted YYYY-MM-DD"})
	}

	quote := pricing.Compute(cat, draft.Items, method)

	order := &models.Order{
		CustomerName:   strings.TrimSpace(draft.Customer.Name),
		CustomerEmail:  strings.TrimSpace(draft.Customer.Email),
		CustomerPhone:  strings.TrimSpace(draft.Customer.Phone),
		DeliveryMethod: method,
		DeliveryDate:   deliveryDate,
		TotalCents:     quote.TotalCents,
		Status:         enums.OrderStatusPending,
		Items:          make([]models.OrderItem, 0, len(draft.Items)),
	}
	if method == enums.DeliveryMethodDelivery {
		address := strings.TrimSpace(draft.Delivery.Address)
		order.DeliveryAddress = &address
	}

	for i, item := range draft.Items {
		cakeType, okType := cat.CakeTypeByID(item.CakeTypeID)
		size, okSize := cat.SizeByID(item.SizeID)
		if !okType || !okSize {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").
				WithDetails(map[string]string{
					fmt.Sprintf("items[%d]", i): "cake type or size is no longer available",
				})
		}

		snapshot := models.OrderItem{
			CakeTypeID:     cakeType.ID,
			CakeTypeName:   cakeType.Name,
			SizeID:         size.ID,
			SizeLabel:      size.Label,
			Quantity:       item.Quantity,
			Flavor:         item.Flavor,
			Filling:        item.Filling,
			Frosting:       item.Frosting,
			DietaryTags:    item.DietaryTags,
			MockupApproved: item.MockupApproved,
			UnitPriceCents: quote.Lines[i].UnitPriceCents,
			TotalCents:     quote.Lines[i].TotalCents,
		}
		if msg := strings.TrimSpace(item.Message); msg != "" {
			snapshot.Message = &msg
		}
		if item.MockupURL != "" {
			url := item.MockupURL
			snapshot.MockupURL = &url
		}
		order.Items = append(order.Items, snapshot)
	}

	return order, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return toDetail(order), nil
}

func (s *service) List(ctx context.Context, status string, page pagination.Params) (*ListResult, error) {
	filter := ListFilter{Limit: pagination.LimitWithBuffer(page.Limit)}

	if strings.TrimSpace(status) != "" {
		parsed, err := enums.ParseOrderStatus(status)
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	limit := pagination.NormalizeLimit(page.Limit)
	result := &ListResult{Orders: make([]Detail, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	for i := range rows {
		result.Orders = append(result.Orders, *toDetail(&rows[i]))
	}
	return result, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Detail, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]string{"status": err.Error()})
	}

	if err := s.repo.UpdateStatus(ctx, id, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

// All loads every order with items, newest first. Serves analytics and export.
func (s *service) All(ctx context.Context) ([]models.Order, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}
