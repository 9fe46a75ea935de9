package dto

// PriceTableBody is the per-category price payload shared by requests
// and responses. Amounts are integer currency units per item.
type PriceTableBody struct {
	Date          string `json:"date,omitempty"`
	Porcelain     int64  `json:"porcelain"`
	InlaySmall    int64  `json:"inlay_small"`
	Inlay         int64  `json:"inlay"`
	CrownPlatinum int64  `json:"crown_platinum"`
	CrownStandard int64  `json:"crown_standard"`
	CrownAlloy    int64  `json:"crown_alloy"`
}

// PriceResponse is the effective price table plus where it came from.
type PriceResponse struct {
	PriceTableBody
	Source string `json:"source"`
}
