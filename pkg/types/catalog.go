package types

// CakeType is one orderable cake style from the catalog.
type CakeType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BasePriceCents int    `json:"base_price_cents"`
	Emoji          string `json:"emoji,omitempty"`
}

// CakeSize scales a cake type's base price and states how many it serves.
type CakeSize struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Servings   string  `json:"servings"`
	Multiplier float64 `json:"multiplier"`
}

// Surcharges holds the config-driven additive fees.
type Surcharges struct {
	DeliveryFeeCents       int `json:"delivery_fee_cents"`
	DietaryFeePerItemCents int `json:"dietary_fee_per_item_cents"`
	FondantFeeCents        int `json:"fondant_fee_cents"`
}

// Catalog is the full order-configuration catalog served to the wizard.
type Catalog struct {
	CakeTypes      []CakeType `json:"cake_types"`
	Sizes          []CakeSize `json:"sizes"`
	Flavors        []string   `json:"flavors"`
	Fillings       []string   `json:"fillings"`
	Frostings      []string   `json:"frostings"`
	DietaryOptions []string   `json:"dietary_options"`
	Surcharges     Surcharges `json:"surcharges"`
	MinLeadDays    int        `json:"min_lead_days"`
}

// CakeTypeByID returns the matching cake type, if any.
func (c Catalog) CakeTypeByID(id string) (CakeType, bool) {
	for _, ct := range c.CakeTypes {
		if ct.ID == id {
			return ct, true
		}
	}
	return CakeType{}, false
}

// SizeByID returns the matching size, if any.
func (c Catalog) SizeByID(id string) (CakeSize, bool) {
	for _, s := range c.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return CakeSize{}, false
}
