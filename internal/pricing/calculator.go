package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// FondantFrosting is the frosting label that attracts the fondant premium.
const FondantFrosting = "Fondant"

// LineQuote is the priced breakdown for one draft item.
type LineQuote struct {
	ItemIndex      int  `json:"item_index"`
	UnitPriceCents int  `json:"unit_price_cents"`
	TotalCents     int  `json:"total_cents"`
	Incomplete     bool `json:"incomplete"`
}

// Quote is the full priced breakdown for a draft.
type Quote struct {
	Lines            []LineQuote `json:"lines"`
	SubtotalCents    int         `json:"subtotal_cents"`
	DeliveryFeeCents int         `json:"delivery_fee_cents"`
	TotalCents       int         `json:"total_cents"`
}

// Compute prices the draft items against the catalog. Items missing a cake
// type or size contribute zero (incomplete, not an error). The delivery fee
// applies once, only for the delivery method.
func Compute(catalog types.Catalog, items []types.CakeItemSpec, method enums.DeliveryMethod) Quote {
	quote := Quote{Lines: make([]LineQuote, 0, len(items))}

	for i, item := range items {
		line := LineQuote{ItemIndex: i}

		cakeType, okType := catalog.CakeTypeByID(item.CakeTypeID)
		size, okSize := catalog.SizeByID(item.SizeID)
		if !okType || !okSize || item.Quantity <= 0 {
			line.Incomplete = true
			quote.Lines = append(quote.Lines, line)
			continue
		}

		unit := decimal.NewFromInt(int64(cakeType.BasePriceCents)).
			Mul(decimal.NewFromFloat(size.Multiplier)).
			Round(0)

		if item.Frosting == FondantFrosting {
			unit = unit.Add(decimal.NewFromInt(int64(catalog.Surcharges.FondantFeeCents)))
		}
		if n := len(item.DietaryTags); n > 0 {
			unit = unit.Add(decimal.NewFromInt(int64(catalog.Surcharges.DietaryFeePerItemCents)).
				Mul(decimal.NewFromInt(int64(n))))
		}

		total := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))

		line.UnitPriceCents = int(unit.IntPart())
		line.TotalCents = int(total.IntPart())
		quote.Lines = append(quote.Lines, line)
		quote.SubtotalCents += line.TotalCents
	}

	quote.TotalCents = quote.SubtotalCents
	if method == enums.DeliveryMethodDelivery {
		quote.DeliveryFeeCents = catalog.Surcharges.DeliveryFeeCents
		quote.TotalCents += quote.DeliveryFeeCents
	}

	return quote
}
