package domain

import (
	"errors"
	"testing"
)

func TestCategoriesClosedVocabulary(t *testing.T) {
	got := Categories()
	if len(got) != 12 {
		t.Fatalf("expected 12 categories, got %d", len(got))
	}
	if got[0] != CategoryTShirt || got[11] != CategoryMagazine {
		t.Fatalf("unexpected order: %v", got)
	}
	got[0] = "Skateboard"
	if Categories()[0] != CategoryTShirt {
		t.Fatalf("Categories must return a copy")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"Coffee Mug":     CategoryMug,
		"coffee-mug":     CategoryMug,
		"  TSHIRT ":      CategoryTShirt,
		"t_shirt":        CategoryTShirt,
		"city billboard": CategoryBillboard,
		"Open Magazine":  CategoryMagazine,
	}
	for input, want := range cases {
		got, err := ParseCategory(input)
		if err != nil {
			t.Fatalf("ParseCategory(%q) error: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q want %q", input, got, want)
		}
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	for _, input := range []string{"", "   ", "Skateboard", "mug"} {
		if _, err := ParseCategory(input); !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("ParseCategory(%q) expected ErrInvalidCategory, got %v", input, err)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	if !CategoryPhoneCase.Valid() {
		t.Fatalf("Phone Case should be valid")
	}
	if Category("phone case").Valid() {
		t.Fatalf("non-canonical spelling should not be valid")
	}
}
