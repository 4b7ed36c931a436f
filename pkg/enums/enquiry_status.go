package enums

import "fmt"

// EnquiryStatus tracks admin triage of a customer enquiry.
type EnquiryStatus string

const (
	EnquiryStatusNew     EnquiryStatus = "new"
	EnquiryStatusRead    EnquiryStatus = "read"
	EnquiryStatusReplied EnquiryStatus = "replied"
)

var validEnquiryStatuses = []EnquiryStatus{
	EnquiryStatusNew,
	EnquiryStatusRead,
	EnquiryStatusReplied,
}

// String implements fmt.Stringer.
func (s EnquiryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known EnquiryStatus.
func (s EnquiryStatus) IsValid() bool {
	for _, candidate := range validEnquiryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseEnquiryStatus converts raw input into an EnquiryStatus.
func ParseEnquiryStatus(value string) (EnquiryStatus, error) {
	for _, candidate := range validEnquiryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid enquiry status %q", value)
}
