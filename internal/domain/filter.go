package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyFilter is the shared filter shape used by listing, search and
// the live sync channel. Zero values mean "not filtered".
type PropertyFilter struct {
	Location     string              `json:"location" query:"location"`
	Region       string              `json:"region" query:"region"`
	PropertyType *PropertyType       `json:"property_type" query:"property_type"`
	PriceRange   string              `json:"price_range" query:"price_range"`
	MinBedrooms  int                 `json:"min_bedrooms" query:"min_bedrooms"`
	StayDuration string              `json:"stay_duration" query:"stay_duration"`
	VerifiedOnly bool                `json:"verified_only" query:"verified_only"`
	Availability *AvailabilityStatus `json:"availability" query:"availability"`
}

// PriceBounds parses the price bucket. Accepted forms: "", "min-max" and
// "min+". Returned bounds are nil when unbounded.
func (f *PropertyFilter) PriceBounds() (min, max *float64, err error) {
	bucket := strings.TrimSpace(f.PriceRange)
	if bucket == "" {
		return nil, nil, nil
	}

	if strings.HasSuffix(bucket, "+") {
		lo, perr := strconv.ParseFloat(strings.TrimSuffix(bucket, "+"), 64)
		if perr != nil || lo < 0 {
			return nil, nil, fmt.Errorf("%w: price range %q", ErrInvalidFilter, f.PriceRange)
		}
		return &lo, nil, nil
	}

	parts := strings.SplitN(bucket, "-", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("%w: price range %q", ErrInvalidFilter, f.PriceRange)
	}
	lo, loErr := strconv.ParseFloat(parts[0], 64)
	hi, hiErr := strconv.ParseFloat(parts[1], 64)
	if loErr != nil || hiErr != nil || lo < 0 || hi < lo {
		return nil, nil, fmt.Errorf("%w: price range %q", ErrInvalidFilter, f.PriceRange)
	}
	return &lo, &hi, nil
}

// Validate rejects malformed filter values before any store call is made.
func (f *PropertyFilter) Validate() error {
	if _, _, err := f.PriceBounds(); err != nil {
		return err
	}
	if f.PropertyType != nil && !f.PropertyType.IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidFilter, *f.PropertyType)
	}
	if f.MinBedrooms < 0 {
		return fmt.Errorf("%w: min_bedrooms must be non-negative", ErrInvalidFilter)
	}
	if f.Availability != nil && !f.Availability.IsValid() {
		return fmt.Errorf("%w: unknown availability %q", ErrInvalidFilter, *f.Availability)
	}
	return nil
}

// Matches evaluates the filter against a property in memory. The sync
// channel and the free-text search layer both rely on this predicate
// being equivalent to the store-side one.
func (f *PropertyFilter) Matches(p *Property) bool {
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.Region != "" {
		if p.Region == nil || !strings.EqualFold(*p.Region, f.Region) {
			return false
		}
	}
	if f.PropertyType != nil && p.PropertyType != *f.PropertyType {
		return false
	}
	if lo, hi, err := f.PriceBounds(); err == nil {
		if lo != nil && p.Price < *lo {
			return false
		}
		if hi != nil && p.Price > *hi {
			return false
		}
	}
	if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
		return false
	}
	if f.StayDuration != "" {
		if p.StayDuration == nil || !strings.EqualFold(*p.StayDuration, f.StayDuration) {
			return false
		}
	}
	if f.VerifiedOnly && !p.IsVerified {
		return false
	}
	if f.Availability != nil && p.Availability != *f.Availability {
		return false
	}
	return true
}

// MatchesTerm reports whether the free-text term occurs in any of the
// property's searchable text fields.
func MatchesTerm(p *Property, term string) bool {
	if term == "" {
		return true
	}
	return containsFold(p.Title, term) ||
		containsFold(p.Description, term) ||
		containsFold(p.Location, term)
}

// Fields returns the filter as canonical key/value pairs for cache-key
// construction. Unset fields are omitted so equal filters always yield
// equal pair sets regardless of how they were built.
func (f *PropertyFilter) Fields() map[string]string {
	fields := make(map[string]string)
	if f.Location != "" {
		fields["location"] = strings.ToLower(f.Location)
	}
	if f.Region != "" {
		fields["region"] = strings.ToLower(f.Region)
	}
	if f.PropertyType != nil {
		fields["type"] = string(*f.PropertyType)
	}
	if f.PriceRange != "" {
		fields["price"] = f.PriceRange
	}
	if f.MinBedrooms > 0 {
		fields["min_bedrooms"] = strconv.Itoa(f.MinBedrooms)
	}
	if f.StayDuration != "" {
		fields["stay"] = strings.ToLower(f.StayDuration)
	}
	if f.VerifiedOnly {
		fields["verified"] = "true"
	}
	if f.Availability != nil {
		fields["availability"] = string(*f.Availability)
	}
	return fields
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
