package model

import "time"

// The catalog taxonomy is read-only reference data: categories branch into
// subcategories and sports, and item types tie the three together. Rows are
// created by the seeding step and never mutated by request handlers.

// Category is a top-level grouping such as "School Uniforms" or "Sports Kit".
type Category struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID         uint64    `json:"id"`
	CategoryID uint64    `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	CreatedAt  time.Time `json:"created_at"`
}

// Sport is an orthogonal axis used by sports-kit item types.
type Sport struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemType classifies listings. A type always references a category and may
// additionally reference a subcategory and/or a sport.
type ItemType struct {
	ID            uint64    `json:"id"`
	CategoryID    uint64    `json:"category_id"`
	SubcategoryID *uint64   `json:"subcategory_id,omitempty"`
	SportID       *uint64   `json:"sport_id,omitempty"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	CreatedAt     time.Time `json:"created_at"`
}
