package wizard

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// Wizard steps, in order. Advancing past a step requires its gate to pass.
const (
	StepCakeType = 1
	StepSize     = 2
	StepFlavors  = 3
	StepDetails  = 4
	StepMockup   = 5
	StepContact  = 6
	StepDelivery = 7
	StepReview   = 8
)

// DeliveryDateLayout is the wire format for requested fulfilment dates.
const DeliveryDateLayout = "2006-01-02"

// Draft is a server-held in-progress order. It lives in Redis under a TTL
// and is discarded on submission or abandonment.
type Draft struct {
	ID        string                `json:"id"`
	Step      int                   `json:"step"`
	Items     []types.CakeItemSpec  `json:"items"`
	Customer  types.CustomerDetails `json:"customer"`
	Delivery  types.DeliveryDetails `json:"delivery"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewDraft opens a fresh draft at step 1 with a single blank item.
func NewDraft(now time.Time) *Draft {
	return &Draft{
		ID:        uuid.NewString(),
		Step:      StepCakeType,
		Items:     []types.CakeItemSpec{{Quantity: 1}},
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// GateForStep validates the gate guarding progression past the given step.
// Steps without a gate always pass.
func GateForStep(draft *Draft, step int, catalog types.Catalog, now time.Time) error {
	switch step {
	case StepCakeType:
		for i, item := range draft.Items {
			if strings.TrimSpace(item.CakeTypeID) == "" {
				return gateError(fmt.Sprintf("items[%d].cake_type_id", i), "select a cake type first")
			}
		}
	case StepSize:
		for i, item := range draft.Items {
			if strings.TrimSpace(item.SizeID) == "" {
				return gateError(fmt.Sprintf("items[%d].size_id", i), "select a size first")
			}
			if item.Quantity < 1 {
				return gateError(fmt.Sprintf("items[%d].quantity", i), "quantity must be at least 1")
			}
		}
	case StepContact:
		if strings.TrimSpace(draft.Customer.Name) == "" {
			return gateError("customer.name", "name is required")
		}
		if strings.TrimSpace(draft.Customer.Email) == "" {
			return gateError("customer.email", "email is required")
		}
		if strings.TrimSpace(draft.Customer.Phone) == "" {
			return gateError("customer.phone", "phone is required")
		}
	case StepDelivery:
		method, err := enums.ParseDeliveryMethod(draft.Delivery.Method)
		if err != nil {
			return gateError("delivery.method", "choose delivery or pickup")
		}
		if strings.TrimSpace(draft.Delivery.Date) == "" {
			return gateError("delivery.date", "a date is required")
		}
		date, err := time.Parse(DeliveryDateLayout, draft.Delivery.Date)
		if err != nil {
			return gateError("delivery.date", "date must be formatted YYYY-MM-DD")
		}
		earliest := now.UTC().AddDate(0, 0, catalog.MinLeadDays).Truncate(24 * time.Hour)
		if date.Before(earliest) {
			return gateError("delivery.date", fmt.Sprintf("we need at least %d days notice", catalog.MinLeadDays))
		}
		if method == enums.DeliveryMethodDelivery && strings.TrimSpace(draft.Delivery.Address) == "" {
			return gateError("delivery.address", "an address is required for delivery")
		}
	}
	return nil
}

// ValidateForSubmit checks every gate a completed order must have passed.
func ValidateForSubmit(draft *Draft, catalog types.Catalog, now time.Time) error {
	if len(draft.Items) == 0 {
		return gateError("items", "the order has no items")
	}
	for _, step := range []int{StepCakeType, StepSize, StepContact, StepDelivery} {
		if err := GateForStep(draft, step, catalog, now); err != nil {
			return err
		}
	}
	return nil
}

func gateError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "order is incomplete").
		WithDetails(map[string]string{field: message})
}
