package catalog

import "github.com/velvetcrumb/velvetcrumb-backend/pkg/types"

// DefaultCatalog is served whenever the site_config row is missing or the
// database is unreachable, so the storefront can always render the wizard.
func DefaultCatalog() types.Catalog {
	return types.Catalog{
		CakeTypes: []types.CakeType{
			{ID: "birthday", Name: "Birthday Cake", BasePriceCents: 5000, Emoji: "🎂"},
			{ID: "wedding", Name: "Wedding Cake", BasePriceCents: 12000, Emoji: "💍"},
			{ID: "anniversary", Name: "Anniversary Cake", BasePriceCents: 6500, Emoji: "🥂"},
			{ID: "baby-shower", Name: "Baby Shower Cake", BasePriceCents: 6000, Emoji: "🍼"},
			{ID: "graduation", Name: "Graduation Cake", BasePriceCents: 5500, Emoji: "🎓"},
			{ID: "custom", Name: "Custom Creation", BasePriceCents: 8000, Emoji: "✨"},
		},
		Sizes: []types.CakeSize{
			{ID: "small", Label: `6" Round`, Servings: "8-10", Multiplier: 1.0},
			{ID: "medium", Label: `8" Round`, Servings: "15-20", Multiplier: 1.5},
			{ID: "large", Label: `10" Round`, Servings: "25-30", Multiplier: 2.0},
			{ID: "xl", Label: `12" Round`, Servings: "40-50", Multiplier: 2.75},
			{ID: "tiered", Label: "Two Tier", Servings: "50-70", Multiplier: 4.0},
		},
		Flavors:        []string{"Vanilla", "Chocolate", "Red Velvet", "Lemon", "Carrot", "Funfetti"},
		Fillings:       []string{"Vanilla Buttercream", "Chocolate Ganache", "Cream Cheese", "Raspberry Jam", "Lemon Curd", "Salted Caramel"},
		Frostings:      []string{"Buttercream", "Fondant", "Cream Cheese", "Whipped Cream", "Ganache"},
		DietaryOptions: []string{"Gluten-Free", "Vegan", "Nut-Free", "Dairy-Free", "Egg-Free"},
		Surcharges: types.Surcharges{
			DeliveryFeeCents:       800,
			DietaryFeePerItemCents: 200,
			FondantFeeCents:        1000,
		},
		MinLeadDays: 3,
	}
}
