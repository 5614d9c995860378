package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ShippingForm {
	return ShippingForm{
		Name:    "Jane Doe",
		Phone:   "08012345678",
		Address: "12 Palm Street",
		City:    "Lagos",
		Zip:     "100001",
	}
}

func TestValidFormPasses(t *testing.T) {
	assert.NoError(t, validForm().Validate())
}

func TestFormFieldMinimums(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*ShippingForm)
	}{
		{"name", func(f *ShippingForm) { f.Name = "J" }},
		{"phone", func(f *ShippingForm) { f.Phone = "080123" }},
		{"address", func(f *ShippingForm) { f.Address = "12 Palm" }},
		{"city", func(f *ShippingForm) { f.City = "L" }},
		{"zip", func(f *ShippingForm) { f.Zip = "100" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)

			err := f.Validate()
			require.Error(t, err)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestWhitespaceDoesNotCountTowardsMinimum(t *testing.T) {
	f := validForm()
	f.City = "  L  "

	var vErr *ValidationError
	require.ErrorAs(t, f.Validate(), &vErr)
	assert.Equal(t, "city", vErr.Field)
}

func TestShippingAddressJoinsFields(t *testing.T) {
	f := validForm()
	f.Address = "12 Palm St"
	assert.Equal(t, "12 Palm St, Lagos, 100001", f.ShippingAddress())
}
