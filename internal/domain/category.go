package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Category enumerates the product contexts a mockup can be rendered onto.
type Category string

const (
	CategoryTShirt     Category = "T-Shirt"
	CategoryHoodie     Category = "Hoodie"
	CategoryMug        Category = "Coffee Mug"
	CategoryPackaging  Category = "Product Packaging"
	CategoryStationery Category = "Stationery"
	CategoryPoster     Category = "Wall Poster"
	CategoryToteBag    Category = "Tote Bag"
	CategoryPhoneCase  Category = "Phone Case"
	CategoryLaptop     Category = "Laptop Screen"
	CategoryTablet     Category = "Tablet Screen"
	CategoryBillboard  Category = "City Billboard"
	CategoryMagazine   Category = "Open Magazine"
)

var categories = []Category{
	CategoryTShirt,
	CategoryHoodie,
	CategoryMug,
	CategoryPackaging,
	CategoryStationery,
	CategoryPoster,
	CategoryToteBag,
	CategoryPhoneCase,
	CategoryLaptop,
	CategoryTablet,
	CategoryBillboard,
	CategoryMagazine,
}

// Categories returns the closed category vocabulary in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves free-form user input into a Category. Matching
// ignores case, spaces, hyphens and underscores, so "coffee-mug" and
// "TSHIRT" resolve to their canonical values.
func ParseCategory(input string) (Category, error) {
	key := categoryKey(input)
	if key == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCategory)
	}
	for _, c := range categories {
		if categoryKey(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, strings.TrimSpace(input))
}

func categoryKey(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '\t':
			return -1
		}
		return r
	}, folded)
}
