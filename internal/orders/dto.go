package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
)

// ItemDetail is the API shape of one persisted line item.
type ItemDetail struct {
	ID             uuid.UUID `json:"id"`
	CakeTypeID     string    `json:"cake_type_id"`
	CakeTypeName   string    `json:"cake_type_name"`
	SizeID         string    `json:"size_id"`
	SizeLabel      string    `json:"size_label"`
	Quantity       int       `json:"quantity"`
	Flavor         string    `json:"flavor,omitempty"`
	Filling        string    `json:"filling,omitempty"`
	Frosting       string    `json:"frosting,omitempty"`
	Message        *string   `json:"message,omitempty"`
	DietaryTags    []string  `json:"dietary_tags,omitempty"`
	MockupURL      *string   `json:"mockup_url,omitempty"`
	MockupApproved bool      `json:"mockup_approved"`
	UnitPriceCents int       `json:"unit_price_cents"`
	TotalCents     int       `json:"total_cents"`
}

// Detail is the API shape of a persisted order.
type Detail struct {
	ID              uuid.UUID            `json:"id"`
	OrderNumber     int64                `json:"order_number"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   string               `json:"customer_phone"`
	DeliveryMethod  enums.DeliveryMethod `json:"delivery_method"`
	DeliveryDate    string               `json:"delivery_date"`
	DeliveryAddress *string              `json:"delivery_address,omitempty"`
	TotalCents      int                  `json:"total_cents"`
	Status          enums.OrderStatus    `json:"status"`
	Items           []ItemDetail         `json:"items"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// ListResult is one page of the admin order listing.
type ListResult struct {
	Orders     []Detail `json:"orders"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

func toDetail(order *models.Order) *Detail {
	detail := &Detail{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		DeliveryMethod:  order.DeliveryMethod,
		DeliveryDate:    order.DeliveryDate.Format("2006-01-02"),
		DeliveryAddress: order.DeliveryAddress,
		TotalCents:      order.TotalCents,
		Status:          order.Status,
		Items:           make([]ItemDetail, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, ItemDetail{
			ID:             item.ID,
			CakeTypeID:     item.CakeTypeID,
			CakeTypeName:   item.CakeTypeName,
			SizeID:         item.SizeID,
			SizeLabel:      item.SizeLabel,
			Quantity:       item.Quantity,
			Flavor:         item.Flavor,
			Filling:        item.Filling,
			Frosting:       item.Frosting,
			Message:        item.Message,
			DietaryTags:    item.DietaryTags,
			MockupURL:      item.MockupURL,
			MockupApproved: item.MockupApproved,
			UnitPriceCents: item.UnitPriceCents,
			TotalCents:     item.TotalCents,
		})
	}
	return detail
}
