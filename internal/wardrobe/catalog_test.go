package wardrobe

import (
	"fmt"
	"testing"

	"github.com/fitform/fitform/internal/db"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	database, err := db.Init(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewCatalog(database)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"shirt", CategoryShirt, false},
		{" Outerwear ", CategoryOuterwear, false},
		{"PANTS", CategoryPants, false},
		{"shoes", CategoryShoes, false},
		{"hat", CategoryHat, false},
		{"scarf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewItemID(t *testing.T) {
	a, err := NewItemID()
	if err != nil {
		t.Fatalf("NewItemID failed: %v", err)
	}
	if len(a) != 26 {
		t.Errorf("id length = %d, want 26 (ULID)", len(a))
	}

	b, err := NewItemID()
	if err != nil {
		t.Fatalf("NewItemID failed: %v", err)
	}
	if a == b {
		t.Error("consecutive ids should differ")
	}
}

func TestCatalog_AddIfAbsent(t *testing.T) {
	catalog := testCatalog(t)

	item := Item{ID: "tee", Name: "Tee", URL: "https://example.com/tee.png", Category: CategoryShirt}

	added, err := catalog.AddIfAbsent(item)
	if err != nil {
		t.Fatalf("AddIfAbsent failed: %v", err)
	}
	if !added {
		t.Error("first add should insert")
	}

	// Same id again is a no-op
	added, err = catalog.AddIfAbsent(Item{ID: "tee", Name: "Other", URL: "x", Category: CategoryShirt})
	if err != nil {
		t.Fatalf("AddIfAbsent failed: %v", err)
	}
	if added {
		t.Error("duplicate id should not insert")
	}

	got, err := catalog.Get("tee")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for stored item")
	}
	if got.Name != "Tee" {
		t.Errorf("Name = %q, want original %q (add-if-absent must not overwrite)", got.Name, "Tee")
	}
}

func TestCatalog_AddIfAbsent_Invalid(t *testing.T) {
	catalog := testCatalog(t)

	if _, err := catalog.AddIfAbsent(Item{ID: "", Category: CategoryShirt}); err == nil {
		t.Error("empty id should fail")
	}
	if _, err := catalog.AddIfAbsent(Item{ID: "x", Category: "scarf"}); err == nil {
		t.Error("invalid category should fail")
	}
}

func TestCatalog_Get_Missing(t *testing.T) {
	catalog := testCatalog(t)

	got, err := catalog.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %+v, want nil", got)
	}
}

func TestCatalog_SeedAndList(t *testing.T) {
	catalog := testCatalog(t)

	if err := catalog.Seed(DefaultItems()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// Seeding twice must not duplicate
	if err := catalog.Seed(DefaultItems()); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	items, err := catalog.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != len(DefaultItems()) {
		t.Fatalf("List returned %d items, want %d", len(items), len(DefaultItems()))
	}

	// Custom upload sorts after defaults
	custom := Item{ID: "upload-1", Name: "Upload", URL: "data:image/png;base64,x", Category: CategoryHat, Custom: true}
	if _, err := catalog.AddIfAbsent(custom); err != nil {
		t.Fatalf("AddIfAbsent failed: %v", err)
	}

	items, err = catalog.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	last := items[len(items)-1]
	if last.ID != "upload-1" || !last.Custom {
		t.Errorf("last item = %+v, want the custom upload", last)
	}
}
