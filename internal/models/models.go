package models

// ValueResult is the payload returned for a single value lookup
type ValueResult struct {
	Value string `json:"value"`
}

// DealStatus represents the shipping state of a deal
type DealStatus string

const (
	DealStatusShipped    DealStatus = "shipped"
	DealStatusProcessing DealStatus = "processing"
)

// IsValid reports whether s is one of the known deal statuses
func (s DealStatus) IsValid() bool {
	switch s {
	case DealStatusShipped, DealStatusProcessing:
		return true
	default:
		return false
	}
}

func (s DealStatus) String() string {
	return string(s)
}

// DealStatusResponse is the HTTP representation of a deal status lookup
type DealStatusResponse struct {
	ID     int        `json:"id"`
	Status DealStatus `json:"status"`
}
