package wardrobe

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Category is the closed set of garment categories. At most one garment per
// category is in effect on the model at a time; applying a second garment of
// the same category replaces the first.
type Category string

const (
	CategoryShirt     Category = "shirt"
	CategoryOuterwear Category = "outerwear"
	CategoryPants     Category = "pants"
	CategoryShoes     Category = "shoes"
	CategoryHat       Category = "hat"
)

// Categories lists all valid categories.
var Categories = []Category{
	CategoryShirt,
	CategoryOuterwear,
	CategoryPants,
	CategoryShoes,
	CategoryHat,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a category string, case-insensitively.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (valid: shirt, outerwear, pants, shoes, hat)", s)
	}
	return c, nil
}

// Item represents a single wardrobe garment. Immutable once created; created
// either from the fixed default set or from a user upload (new id minted at
// upload time).
type Item struct {
	// ID uniquely identifies the item. Default items use fixed slugs;
	// uploaded items get a ULID.
	ID string `json:"id"`

	// Name is the human-readable garment name.
	Name string `json:"name"`

	// URL is the source image reference for the garment.
	URL string `json:"url"`

	// Category is the garment category.
	Category Category `json:"category"`

	// Custom marks items added by the user during this session.
	Custom bool `json:"custom,omitempty"`
}

// NewItemID generates a new ULID for an uploaded item.
func NewItemID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
