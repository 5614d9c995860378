package checkout

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ShippingForm is the checkout form. All fields are required; the minimum
// lengths match what the storefront UI enforces before submitting.
type ShippingForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// ValidationError reports which form field failed and why, so the client
// can attach the message to the right input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: %s: %s", e.Field, e.Message)
}

// Validate applies the form rules. The first failing field is reported.
func (f ShippingForm) Validate() error {
	checks := []struct {
		field   string
		value   string
		min     int
		message string
	}{
		{"name", f.Name, 2, "Name must be at least 2 characters"},
		{"phone", f.Phone, 10, "Please enter a valid phone number"},
		{"address", f.Address, 10, "Please enter a valid address"},
		{"city", f.City, 2, "City is required"},
		{"zip", f.Zip, 4, "ZIP code is required"},
	}
	for _, c := range checks {
		if utf8.RuneCountInString(strings.TrimSpace(c.value)) < c.min {
			return &ValidationError{Field: c.field, Message: c.message}
		}
	}
	return nil
}

// ShippingAddress joins the address fields into the single free-text line
// stored on the order.
func (f ShippingForm) ShippingAddress() string {
	return fmt.Sprintf("%s, %s, %s", f.Address, f.City, f.Zip)
}
