package entity

import (
	"time"

	"github.com/google/uuid"
)

// CustomerProfile holds data specific to the customer role.
type CustomerProfile struct {
	AccountID         uuid.UUID // Foreign key linking this profile to its Account.
	Phone             string    // Canonical +233 phone number.
	PreferredLocation string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ShopOwnerProfile holds data specific to the shop owner role.
type ShopOwnerProfile struct {
	AccountID  uuid.UUID // Foreign key linking this profile to its Account.
	ShopName   string
	Address    string
	Phone      string // Canonical +233 phone number.
	PostalCode string
	City       string
	MapAddress string
	Latitude   float64
	Longitude  float64
	IsApproved bool // Set by an admin action after registration; starts false.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileFields carries the role-specific attributes captured at registration
// intake, before an account exists. Customer registrations fill Phone and
// PreferredLocation; shop owner registrations fill the shop fields. The phone
// number is always in canonical form by the time a ProfileFields value is
// staged (intake rejects anything that fails normalization).
type ProfileFields struct {
	Phone             string  `json:"phone"`
	PreferredLocation string  `json:"preferred_location,omitempty"`
	ShopName          string  `json:"shop_name,omitempty"`
	Address           string  `json:"address,omitempty"`
	City              string  `json:"city,omitempty"`
	PostalCode        string  `json:"postal_code,omitempty"`
	MapAddress        string  `json:"map_address,omitempty"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
}
