package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFilter_PriceBounds(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		f := PropertyFilter{}
		lo, hi, err := f.PriceBounds()
		assert.NoError(t, err)
		assert.Nil(t, lo)
		assert.Nil(t, hi)
	})

	t.Run("Range", func(t *testing.T) {
		f := PropertyFilter{PriceRange: "10000-25000"}
		lo, hi, err := f.PriceBounds()
		assert.NoError(t, err)
		assert.Equal(t, 10000.0, *lo)
		assert.Equal(t, 25000.0, *hi)
	})

	t.Run("Open Ended", func(t *testing.T) {
		f := PropertyFilter{PriceRange: "50000+"}
		lo, hi, err := f.PriceBounds()
		assert.NoError(t, err)
		assert.Equal(t, 50000.0, *lo)
		assert.Nil(t, hi)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, bucket := range []string{"abc", "100-", "-100", "200-100", "10--20"} {
			f := PropertyFilter{PriceRange: bucket}
			_, _, err := f.PriceBounds()
			assert.ErrorIs(t, err, ErrInvalidFilter, "bucket %q", bucket)
		}
	})
}

func TestPropertyFilter_Validate(t *testing.T) {
	badType := PropertyType("castle")
	badAvail := AvailabilityStatus("gone")

	assert.NoError(t, (&PropertyFilter{}).Validate())
	assert.ErrorIs(t, (&PropertyFilter{PriceRange: "x"}).Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, (&PropertyFilter{PropertyType: &badType}).Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, (&PropertyFilter{MinBedrooms: -1}).Validate(), ErrInvalidFilter)
	assert.ErrorIs(t, (&PropertyFilter{Availability: &badAvail}).Validate(), ErrInvalidFilter)
}

func TestPropertyFilter_Matches(t *testing.T) {
	region := "Nairobi"
	prop := &Property{
		Title:        "Sunny Two-Bedroom",
		Location:     "Kilimani, Nairobi",
		Region:       &region,
		Price:        42000,
		PropertyType: TypeApartment,
		Bedrooms:     2,
		IsVerified:   true,
		Availability: Available,
	}

	apartment := TypeApartment
	house := TypeHouse
	unavailable := Unavailable

	t.Run("All Criteria", func(t *testing.T) {
		f := PropertyFilter{
			Location:     "kilimani",
			Region:       "nairobi",
			PropertyType: &apartment,
			PriceRange:   "40000-50000",
			MinBedrooms:  2,
			VerifiedOnly: true,
		}
		assert.True(t, f.Matches(prop))
	})

	t.Run("Type Mismatch", func(t *testing.T) {
		f := PropertyFilter{PropertyType: &house}
		assert.False(t, f.Matches(prop))
	})

	t.Run("Price Out Of Bucket", func(t *testing.T) {
		f := PropertyFilter{PriceRange: "50000+"}
		assert.False(t, f.Matches(prop))
	})

	t.Run("Too Few Bedrooms", func(t *testing.T) {
		f := PropertyFilter{MinBedrooms: 3}
		assert.False(t, f.Matches(prop))
	})

	t.Run("Availability Mismatch", func(t *testing.T) {
		f := PropertyFilter{Availability: &unavailable}
		assert.False(t, f.Matches(prop))
	})

	t.Run("Unverified Excluded", func(t *testing.T) {
		unverified := *prop
		unverified.IsVerified = false
		f := PropertyFilter{VerifiedOnly: true}
		assert.False(t, f.Matches(&unverified))
	})
}

func TestMatchesTerm(t *testing.T) {
	prop := &Property{
		Title:       "Garden Cottage",
		Description: "Quiet unit with a shared yard",
		Location:    "Westlands",
	}

	assert.True(t, MatchesTerm(prop, ""))
	assert.True(t, MatchesTerm(prop, "cottage"))
	assert.True(t, MatchesTerm(prop, "YARD"))
	assert.True(t, MatchesTerm(prop, "westlands"))
	assert.False(t, MatchesTerm(prop, "penthouse"))
}

func TestPropertyFilter_Fields(t *testing.T) {
	apartment := TypeApartment

	t.Run("Zero Values Omitted", func(t *testing.T) {
		f := PropertyFilter{}
		assert.Empty(t, f.Fields())
	})

	t.Run("Canonical Case", func(t *testing.T) {
		a := PropertyFilter{Location: "Kilimani", PropertyType: &apartment, MinBedrooms: 2}
		b := PropertyFilter{Location: "KILIMANI", PropertyType: &apartment, MinBedrooms: 2}
		assert.Equal(t, a.Fields(), b.Fields())
	})
}
