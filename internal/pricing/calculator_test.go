package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velvetcrumb/velvetcrumb-backend/internal/catalog"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

func TestCompute(t *testing.T) {
	cat := catalog.DefaultCatalog()

	tests := []struct {
		name      string
		items     []types.CakeItemSpec
		method    enums.DeliveryMethod
		wantTotal int
	}{
		{
			name: "fondant dietary delivery combined",
			items: []types.CakeItemSpec{
				{
					CakeTypeID:  "birthday",
					SizeID:      "medium",
					Quantity:    2,
					Frosting:    "Fondant",
					DietaryTags: []string{"Vegan", "Nut-Free"},
				},
			},
			method: enums.DeliveryMethodDelivery,
			// ((5000*1.5)+1000+2*200)*2 + 800
			wantTotal: 18600,
		},
		{
			name: "pickup skips delivery fee",
			items: []types.CakeItemSpec{
				{CakeTypeID: "birthday", SizeID: "small", Quantity: 1, Frosting: "Buttercream"},
			},
			method:    enums.DeliveryMethodPickup,
			wantTotal: 5000,
		},
		{
			name: "multiple items summed",
			items: []types.CakeItemSpec{
				{CakeTypeID: "birthday", SizeID: "small", Quantity: 1},
				{CakeTypeID: "wedding", SizeID: "large", Quantity: 1},
			},
			method:    enums.DeliveryMethodPickup,
			wantTotal: 5000 + 24000,
		},
		{
			name: "incomplete item contributes zero",
			items: []types.CakeItemSpec{
				{CakeTypeID: "birthday", SizeID: "small", Quantity: 1},
				{CakeTypeID: "", SizeID: "small", Quantity: 1},
				{CakeTypeID: "birthday", SizeID: "", Quantity: 1},
			},
			method:    enums.DeliveryMethodPickup,
			wantTotal: 5000,
		},
		{
			name: "unknown ids contribute zero",
			items: []types.CakeItemSpec{
				{CakeTypeID: "nope", SizeID: "small", Quantity: 1},
			},
			method:    enums.DeliveryMethodPickup,
			wantTotal: 0,
		},
		{
			name:      "empty draft with delivery still charges fee",
			items:     nil,
			method:    enums.DeliveryMethodDelivery,
			wantTotal: 800,
		},
		{
			name: "fractional multiplier rounds half up",
			items: []types.CakeItemSpec{
				// 5500 * 2.75 = 15125, no rounding needed but exercises the path
				{CakeTypeID: "graduation", SizeID: "xl", Quantity: 1},
			},
			method:    enums.DeliveryMethodPickup,
			wantTotal: 15125,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(cat, tt.items, tt.method)
			assert.Equal(t, tt.wantTotal, got.TotalCents)
			assert.Len(t, got.Lines, len(tt.items))
		})
	}
}

func TestComputeLineBreakdown(t *testing.T) {
	cat := catalog.DefaultCatalog()

	quote := Compute(cat, []types.CakeItemSpec{
		{
			CakeTypeID:  "birthday",
			SizeID:      "medium",
			Quantity:    2,
			Frosting:    "Fondant",
			DietaryTags: []string{"Vegan", "Nut-Free"},
		},
	}, enums.DeliveryMethodDelivery)

	assert.Equal(t, 8900, quote.Lines[0].UnitPriceCents)
	assert.Equal(t, 17800, quote.Lines[0].TotalCents)
	assert.False(t, quote.Lines[0].Incomplete)
	assert.Equal(t, 17800, quote.SubtotalCents)
	assert.Equal(t, 800, quote.DeliveryFeeCents)
	assert.Equal(t, 18600, quote.TotalCents)
}

func TestComputeDeliveryFeeOnce(t *testing.T) {
	cat := catalog.DefaultCatalog()

	quote := Compute(cat, []types.CakeItemSpec{
		{CakeTypeID: "birthday", SizeID: "small", Quantity: 1},
		{CakeTypeID: "birthday", SizeID: "small", Quantity: 1},
		{CakeTypeID: "birthday", SizeID: "small", Quantity: 1},
	}, enums.DeliveryMethodDelivery)

	assert.Equal(t, 15000+800, quote.TotalCents)
	assert.Equal(t, 800, quote.DeliveryFeeCents)
}
