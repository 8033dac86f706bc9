package types

import "strings"

// ShippingAddress is the destination shape collected at checkout.
type ShippingAddress struct {
	FullName string `json:"full_name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	ZipCode  string `json:"zip_code" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// IsComplete reports whether every field carries a non-blank value.
func (a ShippingAddress) IsComplete() bool {
	for _, field := range []string{a.FullName, a.Address, a.City, a.ZipCode, a.Country} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}
