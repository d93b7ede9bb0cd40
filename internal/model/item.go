package model

import (
	"strings"
	"time"
)

// Gender classifies who a listed garment is cut for.
type Gender string

const (
	GenderBoy    Gender = "boy"
	GenderGirl   Gender = "girl"
	GenderUnisex Gender = "unisex"
)

// ParseGender maps a request string onto a known Gender, case-insensitively.
// The boolean reports whether the input was recognised.
func ParseGender(s string) (Gender, bool) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderBoy:
		return GenderBoy, true
	case GenderGirl:
		return GenderGirl, true
	case GenderUnisex:
		return GenderUnisex, true
	}
	return "", false
}

// Listing states stored in `items.status`. "Sold out" is not a status: it is
// derived from quantity == 0 when building responses.
const (
	ItemAvailable = "available"
	ItemSold      = "sold"
	ItemReserved  = "reserved"
)

// Item mirrors a row of the `items` table. The free-text category,
// subcategory, sport, school and club columns are display-only overrides
// kept alongside the normalized ItemTypeID reference; filtering always goes
// through the reference, never the free text.
type Item struct {
	ID             uint64
	UserID         uint64
	ItemTypeID     *uint64
	ItemName       string
	Category       string
	Subcategory    string
	Sport          string
	SchoolName     string
	ClubName       string
	Team           string
	Size           string
	Gender         Gender
	ConditionGrade *int
	Price          float64
	FrontPhoto     string
	BackPhoto      string
	Description    string
	Quantity       int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SoldOut reports whether the listing has no stock left.
func (i *Item) SoldOut() bool { return i.Quantity == 0 }
