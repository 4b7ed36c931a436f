package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/analytics"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	pkgerrors "github.com/velvetcrumb/velvetcrumb-backend/pkg/errors"
)

// Header is the fixed CSV header row for order exports.
var Header = []string{"Order ID", "Date", "Customer", "Email", "Items", "Total Price", "Status"}

// Service streams admin order exports.
type Service interface {
	WriteOrdersCSV(ctx context.Context, w io.Writer) error
}

type service struct {
	source analytics.OrderSource
}

// NewService builds the export service.
func NewService(source analytics.OrderSource) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("order source is required")
	}
	return &service{source: source}, nil
}

// WriteOrdersCSV writes the header plus one row per order.
func (s *service) WriteOrdersCSV(ctx context.Context, w io.Writer) error {
	orders, err := s.source.All(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}
	for i := range orders {
		if err := writer.Write(orderRow(&orders[i])); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return nil
}

func orderRow(order *models.Order) []string {
	return []string{
		order.ID.String(),
		order.CreatedAt.UTC().Format("2006-01-02"),
		order.CustomerName,
		order.CustomerEmail,
		itemsSummary(order.Items),
		formatPrice(order.TotalCents),
		order.Status.String(),
	}
}

// itemsSummary renders line items as "2x Birthday Cake (8" Round)" joined
// with semicolons, mirroring how the dashboard lists them.
func itemsSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s (%s)", item.Quantity, item.CakeTypeName, item.SizeLabel))
	}
	return strings.Join(parts, "; ")
}

func formatPrice(cents int) string {
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100)).StringFixed(2)
}
