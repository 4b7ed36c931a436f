package types

// InspirationImage is an inline customer-supplied reference photo. It is
// forwarded to the mockup generator and never persisted.
type InspirationImage struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

// CakeItemSpec is one configurable line item inside an order draft. Fields
// are mutated one at a time as the customer advances through the wizard.
type CakeItemSpec struct {
	CakeTypeID       string            `json:"cake_type_id"`
	SizeID           string            `json:"size_id"`
	Quantity         int               `json:"quantity"`
	Flavor           string            `json:"flavor"`
	Filling          string            `json:"filling"`
	Frosting         string            `json:"frosting"`
	Message          string            `json:"message"`
	DietaryTags      []string          `json:"dietary_tags"`
	Inspiration      *InspirationImage `json:"inspiration,omitempty"`
	MockupURL        string            `json:"mockup_url,omitempty"`
	MockupApproved   bool              `json:"mockup_approved"`
}

// CustomerDetails are the shared contact fields collected at step 6.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DeliveryDetails are the shared fulfilment fields collected at step 7.
type DeliveryDetails struct {
	Method  string `json:"method"`
	Date    string `json:"date"`
	Address string `json:"address"`
}
