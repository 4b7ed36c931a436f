package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/internal/pricing"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// UpdatePatch replaces whole sections of a draft. Nil sections are left
// untouched, so a step can submit only the fields it owns.
type UpdatePatch struct {
	Items    *[]types.CakeItemSpec  `json:"items,omitempty"`
	Customer *types.CustomerDetails `json:"customer,omitempty"`
	Delivery *types.DeliveryDetails `json:"delivery,omitempty"`
}

// View is a draft plus its live server-computed quote.
type View struct {
	Draft *Draft        `json:"draft"`
	Quote pricing.Quote `json:"quote"`
}

// Service drives the order wizard's draft lifecycle.
type Service interface {
	Create(ctx context.Context) (*View, error)
	Get(ctx context.Context, draftID string) (*View, error)
	Update(ctx context.Context, draftID string, patch UpdatePatch) (*View, error)
	Advance(ctx context.Context, draftID string) (*View, error)
	Back(ctx context.Context, draftID string) (*View, error)
	Discard(ctx context.Context, draftID string) error
}

type service struct {
	store   Store
	catalog catalog.Service
	cfg     config.WizardConfig
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the wizard service.
func NewService(store Store, catalogSvc catalog.Service, cfg config.WizardConfig, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("draft store is required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service is required")
	}
	return &service{
		store:   store,
		catalog: catalogSvc,
		cfg:     cfg,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context) (*View, error) {
	draft := NewDraft(s.now())
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft), nil
}

func (s *service) Get(ctx context.Context, draftID string) (*View, error) {
	draft, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, draft), nil
}

func (s *service) Update(ctx context.Context, draftID string, patch UpdatePatch) (*View, error) {
	draft, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if patch.Items != nil {
		if err := s.validateItems(*patch.Items); err != nil {
			return nil, err
		}
		draft.Items = *patch.Items
	}
	if patch.Customer != nil {
		draft.Customer = *patch.Customer
	}
	if patch.Delivery != nil {
		if patch.Delivery.Method != "" {
			if _, err := enums.ParseDeliveryMethod(patch.Delivery.Method); err != nil {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order").
					WithDetails(map[string]string{"delivery.method": "choose delivery or pickup"})
			}
		}
		draft.Delivery = *patch.Delivery
	}

	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft), nil
}

// Advance moves to the next step if the current step's gate passes.
func (s *service) Advance(ctx context.Context, draftID string) (*View, error) {
	draft, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step >= StepReview {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already at the final step")
	}

	cat, _ := s.catalog.Catalog(ctx)
	if err := GateForStep(draft, draft.Step, cat, s.now()); err != nil {
		return nil, err
	}

	draft.Step++
	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft), nil
}

// Back moves one step backwards. Always allowed above step 1.
func (s *service) Back(ctx context.Context, draftID string) (*View, error) {
	draft, err := s.store.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Step <= StepCakeType {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already at the first step")
	}

	draft.Step--
	draft.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, err
	}
	return s.view(ctx, draft), nil
}

func (s *service) Discard(ctx context.Context, draftID string) error {
	return s.store.Delete(ctx, draftID)
}

func (s *service) view(ctx context.Context, draft *Draft) *View {
	cat, _ := s.catalog.Catalog(ctx)
	method, _ := enums.ParseDeliveryMethod(draft.Delivery.Method)
	return &View{
		Draft: draft,
		Quote: pricing.Compute(cat, draft.Items, method),
	}
}

func (s *service) validateItems(items []types.CakeItemSpec) error {
	details := map[string]string{}
	if len(items) == 0 {
		details["items"] = "at least one item is required"
	}
	if s.cfg.MaxItems > 0 && len(items) > s.cfg.MaxItems {
		details["items"] = fmt.Sprintf("at most %d items per order", s.cfg.MaxItems)
	}
	for i, item := range items {
		if item.Quantity < 0 {
			details[fmt.Sprintf("items[%d].quantity", i)] = "quantity cannot be negative"
		}
		if s.cfg.MessageMaxLength > 0 && len(item.Message) > s.cfg.MessageMaxLength {
			details[fmt.Sprintf("items[%d].message", i)] = fmt.Sprintf("message must be at most %d characters", s.cfg.MessageMaxLength)
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order").WithDetails(details)
	}
	return nil
}
