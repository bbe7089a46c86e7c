package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeTownhouse  PropertyType = "townhouse"
	TypeLand       PropertyType = "land"
	TypeCommercial PropertyType = "commercial"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeTownhouse, TypeLand, TypeCommercial:
		return true
	}
	return false
}

type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	PendingDeal AvailabilityStatus = "pending"
	Unavailable AvailabilityStatus = "unavailable"
)

func (a AvailabilityStatus) IsValid() bool {
	switch a {
	case Available, PendingDeal, Unavailable:
		return true
	}
	return false
}

type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusPending    VerificationStatus = "pending"
	StatusVerified   VerificationStatus = "verified"
	StatusRejected   VerificationStatus = "rejected"
)

func (v VerificationStatus) IsValid() bool {
	switch v {
	case StatusUnverified, StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether a submission can no longer change state.
func (v VerificationStatus) IsTerminal() bool {
	return v == StatusVerified || v == StatusRejected
}

type Property struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	Title              string             `json:"title" db:"title"`
	Description        string             `json:"description" db:"description"`
	Location           string             `json:"location" db:"location"`
	Region             *string            `json:"region,omitempty" db:"region"`
	Town               *string            `json:"town,omitempty" db:"town"`
	Price              float64            `json:"price" db:"price"`
	PropertyType       PropertyType       `json:"property_type" db:"property_type"`
	Bedrooms           int                `json:"bedrooms" db:"bedrooms"`
	Bathrooms          int                `json:"bathrooms" db:"bathrooms"`
	Area               float64            `json:"area" db:"area"`
	StayDuration       *string            `json:"stay_duration,omitempty" db:"stay_duration"`
	Features           pq.StringArray     `json:"features" db:"features"`
	Images             pq.StringArray     `json:"images" db:"images"`
	HomeOwnerID        uuid.UUID          `json:"home_owner_id" db:"home_owner_id"`
	Availability       AvailabilityStatus `json:"availability" db:"availability"`
	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	IsVerified         bool               `json:"is_verified" db:"is_verified"`
	VerifiedBy         *uuid.UUID         `json:"verified_by,omitempty" db:"verified_by"`
	VerificationDate   *time.Time         `json:"verification_date,omitempty" db:"verification_date"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// OwnerContact is the confidential contact block attached to a property.
// It is only returned through the privileged read path, never on public
// listings.
type OwnerContact struct {
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	FullName   string    `json:"full_name" db:"full_name"`
	Phone      string    `json:"phone" db:"phone"`
	Email      string    `json:"email" db:"email"`
	IDType     *string   `json:"id_type,omitempty" db:"id_type"`
	IDNumber   *string   `json:"id_number,omitempty" db:"id_number"`
	Address    *string   `json:"address,omitempty" db:"address"`
}

type CreatePropertyInput struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Location     string             `json:"location"`
	Region       *string            `json:"region,omitempty"`
	Town         *string            `json:"town,omitempty"`
	Price        float64            `json:"price"`
	PropertyType PropertyType       `json:"property_type"`
	Bedrooms     int                `json:"bedrooms"`
	Bathrooms    int                `json:"bathrooms"`
	Area         float64            `json:"area"`
	StayDuration *string            `json:"stay_duration,omitempty"`
	Features     []string           `json:"features"`
	Images       []string           `json:"images"`
	Availability AvailabilityStatus `json:"availability,omitempty"`
	OwnerContact *OwnerContact      `json:"owner_contact,omitempty"`
}

func (in *CreatePropertyInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEntity)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidEntity)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidEntity)
	}
	if !in.PropertyType.IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidEntity, in.PropertyType)
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 {
		return fmt.Errorf("%w: bedroom and bathroom counts must be non-negative", ErrInvalidEntity)
	}
	if in.Area <= 0 {
		return fmt.Errorf("%w: area must be positive", ErrInvalidEntity)
	}
	if in.Availability != "" && !in.Availability.IsValid() {
		return fmt.Errorf("%w: unknown availability %q", ErrInvalidEntity, in.Availability)
	}
	return nil
}

// UpdatePropertyInput is the tagged patch accepted by the update path.
// Identity, ownership, creation time and the verification fields are not
// representable here, which is what keeps them immutable through this path.
type UpdatePropertyInput struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Location     *string             `json:"location"`
	Region       NullableString      `json:"region"`
	Town         NullableString      `json:"town"`
	Price        *float64            `json:"price"`
	PropertyType *PropertyType       `json:"property_type"`
	Bedrooms     *int                `json:"bedrooms"`
	Bathrooms    *int                `json:"bathrooms"`
	Area         *float64            `json:"area"`
	StayDuration NullableString      `json:"stay_duration"`
	Features     *[]string           `json:"features"`
	Images       *[]string           `json:"images"`
	Availability *AvailabilityStatus `json:"availability"`
}

func (in *UpdatePropertyInput) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidEntity)
	}
	if in.Location != nil && *in.Location == "" {
		return fmt.Errorf("%w: location cannot be empty", ErrInvalidEntity)
	}
	if in.Price != nil && *in.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidEntity)
	}
	if in.PropertyType != nil && !in.PropertyType.IsValid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidEntity, *in.PropertyType)
	}
	if in.Bedrooms != nil && *in.Bedrooms < 0 {
		return fmt.Errorf("%w: bedrooms must be non-negative", ErrInvalidEntity)
	}
	if in.Bathrooms != nil && *in.Bathrooms < 0 {
		return fmt.Errorf("%w: bathrooms must be non-negative", ErrInvalidEntity)
	}
	if in.Area != nil && *in.Area <= 0 {
		return fmt.Errorf("%w: area must be positive", ErrInvalidEntity)
	}
	if in.Availability != nil && !in.Availability.IsValid() {
		return fmt.Errorf("%w: unknown availability %q", ErrInvalidEntity, *in.Availability)
	}
	return nil
}

// Apply folds the patch into p and reports whether anything changed.
func (in *UpdatePropertyInput) Apply(p *Property) bool {
	changed := false
	if in.Title != nil && *in.Title != p.Title {
		p.Title = *in.Title
		changed = true
	}
	if in.Description != nil && *in.Description != p.Description {
		p.Description = *in.Description
		changed = true
	}
	if in.Location != nil && *in.Location != p.Location {
		p.Location = *in.Location
		changed = true
	}
	if in.Region.Set {
		p.Region = in.Region.Value
		changed = true
	}
	if in.Town.Set {
		p.Town = in.Town.Value
		changed = true
	}
	if in.Price != nil && *in.Price != p.Price {
		p.Price = *in.Price
		changed = true
	}
	if in.PropertyType != nil && *in.PropertyType != p.PropertyType {
		p.PropertyType = *in.PropertyType
		changed = true
	}
	if in.Bedrooms != nil && *in.Bedrooms != p.Bedrooms {
		p.Bedrooms = *in.Bedrooms
		changed = true
	}
	if in.Bathrooms != nil && *in.Bathrooms != p.Bathrooms {
		p.Bathrooms = *in.Bathrooms
		changed = true
	}
	if in.Area != nil && *in.Area != p.Area {
		p.Area = *in.Area
		changed = true
	}
	if in.StayDuration.Set {
		p.StayDuration = in.StayDuration.Value
		changed = true
	}
	if in.Features != nil {
		p.Features = pq.StringArray(*in.Features)
		changed = true
	}
	if in.Images != nil {
		p.Images = pq.StringArray(*in.Images)
		changed = true
	}
	if in.Availability != nil && *in.Availability != p.Availability {
		p.Availability = *in.Availability
		changed = true
	}
	return changed
}
