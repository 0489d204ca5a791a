package builder

import (
	"reflect"
	"testing"
	"time"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(
		WithNormalizerClock(fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))),
		WithNormalizerIDGenerator(sequentialIDs("fix")),
	)
}

func TestNormalizeNil(t *testing.T) {
	if got := newTestNormalizer().Normalize(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestNormalizeFillsConfigDefaults(t *testing.T) {
	n := newTestNormalizer()

	fixed := n.Normalize(&ScreenConfig{})
	if fixed.Name != DefaultConfigName {
		t.Fatalf("expected default name, got %q", fixed.Name)
	}
	if fixed.Version != 1 {
		t.Fatalf("expected version 1, got %d", fixed.Version)
	}
	want := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !fixed.CreatedAt.Equal(want) || !fixed.UpdatedAt.Equal(want) {
		t.Fatalf("expected timestamps stamped, got %s / %s", fixed.CreatedAt, fixed.UpdatedAt)
	}
	if fixed.Sections == nil || len(fixed.Sections) != 0 {
		t.Fatalf("expected empty sections slice, got %+v", fixed.Sections)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	n := newTestNormalizer()
	input := &ScreenConfig{Name: "", Sections: []*Section{{ID: "", Type: "bogus"}}}

	n.Normalize(input)

	if input.Name != "" {
		t.Fatal("expected input name untouched")
	}
	if input.Sections[0].ID != "" || input.Sections[0].Type != "bogus" {
		t.Fatalf("expected input section untouched, got %+v", input.Sections[0])
	}
}

func TestNormalizeRepairsSections(t *testing.T) {
	n := newTestNormalizer()
	cfg := &ScreenConfig{
		Name: "Screen",
		Sections: []*Section{
			nil,
			{ID: "s-1", Type: "carousel", Title: "", Items: nil},
		},
	}

	fixed := n.Normalize(cfg)
	if len(fixed.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(fixed.Sections))
	}

	synthesized := fixed.Sections[0]
	if synthesized.ID == "" || synthesized.Type != SectionBanner {
		t.Fatalf("expected synthesized banner section, got %+v", synthesized)
	}
	if synthesized.Title != NewSectionTitle {
		t.Fatalf("expected %q title, got %q", NewSectionTitle, synthesized.Title)
	}

	repaired := fixed.Sections[1]
	if repaired.Type != SectionBanner {
		t.Fatalf("expected invalid type reset to banner, got %q", repaired.Type)
	}
	if repaired.Title != DefaultSectionTitle {
		t.Fatalf("expected default title, got %q", repaired.Title)
	}
	if repaired.Items == nil || len(repaired.Items) != 0 {
		t.Fatalf("expected empty items slice, got %+v", repaired.Items)
	}
	if repaired.Settings.IsZero() {
		t.Fatal("expected default settings installed")
	}
}

func TestNormalizeRepairsItems(t *testing.T) {
	n := newTestNormalizer()
	cfg := &ScreenConfig{
		Name: "Screen",
		Sections: []*Section{{
			ID:   "s-1",
			Type: SectionGrid,
			Items: []*Item{
				nil,
				{ID: "", Type: "widget", Content: nil},
				{ID: "i-1", Type: ItemProduct, Content: &ItemContent{Title: "Keep"}},
			},
		}},
	}

	fixed := n.Normalize(cfg)
	items := fixed.Sections[0].Items
	if len(items) != 2 {
		t.Fatalf("expected nil item dropped, got %d items", len(items))
	}

	repaired := items[0]
	if repaired.ID == "" {
		t.Fatal("expected id issued")
	}
	if repaired.Type != ItemText {
		t.Fatalf("expected invalid type reset to text, got %q", repaired.Type)
	}
	if repaired.Content == nil || repaired.Content.Title != DefaultItemTitle {
		t.Fatalf("expected placeholder content, got %+v", repaired.Content)
	}

	if items[1].Content.Title != "Keep" {
		t.Fatal("expected well-formed item untouched")
	}
}

func TestNormalizeReissuesDuplicateIDs(t *testing.T) {
	n := newTestNormalizer()
	cfg := &ScreenConfig{
		Name: "Screen",
		Sections: []*Section{
			{ID: "dup", Type: SectionBanner, Title: "A"},
			{ID: "dup", Type: SectionGrid, Title: "B", Items: []*Item{
				{ID: "i", Type: ItemText, Content: &ItemContent{}},
				{ID: "i", Type: ItemText, Content: &ItemContent{}},
			}},
		},
	}

	fixed := n.Normalize(cfg)
	if fixed.Sections[0].ID != "dup" {
		t.Fatal("expected first occurrence to keep its id")
	}
	if fixed.Sections[1].ID == "dup" {
		t.Fatal("expected duplicate section id re-issued")
	}
	items := fixed.Sections[1].Items
	if items[0].ID != "i" || items[1].ID == "i" {
		t.Fatalf("expected duplicate item id re-issued, got %q/%q", items[0].ID, items[1].ID)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newTestNormalizer()
	cfg := &ScreenConfig{
		Sections: []*Section{
			nil,
			{ID: "dup", Type: "bogus"},
			{ID: "dup", Items: []*Item{nil, {Type: "widget"}}},
		},
	}

	once := n.Normalize(cfg)
	twice := n.Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected repair to be a fixpoint:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestNormalizeDocument(t *testing.T) {
	n := newTestNormalizer()

	if got := n.NormalizeDocument(nil); got != nil {
		t.Fatalf("expected nil for nil document, got %+v", got)
	}

	doc := map[string]any{
		"_id":       "cfg-9",
		"name":      "From wire",
		"isActive":  true,
		"version":   float64(3),
		"createdAt": "2025-05-01T10:00:00Z",
		"sections": []any{
			"not-a-section",
			map[string]any{
				"id":   "s-1",
				"type": "grid",
				"settings": map[string]any{
					"gridColumns": float64(3),
					"themeHint":   "dark",
				},
				"items": []any{
					42,
					map[string]any{
						"id":   "i-1",
						"type": "product",
						"content": map[string]any{
							"title": "Shoes",
							"price": "$10",
							"tags":  []any{"new", "sale"},
							"badge": "hot",
						},
					},
				},
			},
		},
	}

	fixed := n.NormalizeDocument(doc)
	if fixed.ID != "cfg-9" {
		t.Fatalf("expected _id fallback honoured, got %q", fixed.ID)
	}
	if fixed.Name != "From wire" || !fixed.IsActive || fixed.Version != 3 {
		t.Fatalf("unexpected header fields: %+v", fixed)
	}
	if fixed.CreatedAt.IsZero() {
		t.Fatal("expected createdAt parsed")
	}
	if fixed.UpdatedAt.IsZero() {
		t.Fatal("expected missing updatedAt stamped")
	}

	if len(fixed.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(fixed.Sections))
	}
	// The non-object entry is synthesized into a default section.
	if fixed.Sections[0].Type != SectionBanner {
		t.Fatalf("expected synthesized section, got %+v", fixed.Sections[0])
	}

	grid := fixed.Sections[1]
	if grid.Type != SectionGrid {
		t.Fatalf("expected grid type, got %q", grid.Type)
	}
	if grid.Settings.GridColumns != "3" {
		t.Fatalf("expected numeric gridColumns coerced to string, got %q", grid.Settings.GridColumns)
	}
	if grid.Settings.Extra["themeHint"] != "dark" {
		t.Fatalf("expected unknown settings key kept, got %+v", grid.Settings.Extra)
	}

	// The numeric item entry is dropped; the object survives.
	if len(grid.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(grid.Items))
	}
	item := grid.Items[0]
	if item.Content.Title != "Shoes" || item.Content.Price != "$10" {
		t.Fatalf("unexpected content: %+v", item.Content)
	}
	if !reflect.DeepEqual(item.Content.Tags, []string{"new", "sale"}) {
		t.Fatalf("unexpected tags: %+v", item.Content.Tags)
	}
	if item.Content.Extra["badge"] != "hot" {
		t.Fatalf("expected unknown content key kept, got %+v", item.Content.Extra)
	}
}

func TestNormalizeDocumentWithoutSections(t *testing.T) {
	n := newTestNormalizer()

	fixed := n.NormalizeDocument(map[string]any{"name": "Bare"})
	if fixed.Sections == nil || len(fixed.Sections) != 0 {
		t.Fatalf("expected empty sections slice, got %+v", fixed.Sections)
	}

	fixed = n.NormalizeDocument(map[string]any{"name": "Bad", "sections": "oops"})
	if fixed.Sections == nil || len(fixed.Sections) != 0 {
		t.Fatalf("expected non-array sections replaced, got %+v", fixed.Sections)
	}
}
