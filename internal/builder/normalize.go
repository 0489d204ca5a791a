package builder

import (
	"time"

	"github.com/goliatone/go-screens/internal/identity"
)

// Placeholder values injected while repairing incomplete configurations.
const (
	DefaultConfigName   = "New configuration"
	DefaultSectionTitle = "Untitled section"
	DefaultItemTitle    = "Untitled item"
	NewSectionTitle     = "New section"
)

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithNormalizerClock overrides the time source used for missing timestamps.
func WithNormalizerClock(clock func() time.Time) NormalizerOption {
	return func(n *Normalizer) {
		if clock != nil {
			n.now = clock
		}
	}
}

// WithNormalizerIDGenerator overrides the identifier source for repaired nodes.
func WithNormalizerIDGenerator(generator func() string) NormalizerOption {
	return func(n *Normalizer) {
		if generator != nil {
			n.id = generator
		}
	}
}

// Normalizer repairs possibly-malformed configurations loaded from external
// sources into structurally sound trees the editor's invariants hold on.
// There is no reject path: broken input is repaired, never refused.
type Normalizer struct {
	now func() time.Time
	id  func() string
}

// NewNormalizer constructs a repairer with the default clock and ID source.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		now: time.Now,
		id:  identity.New,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize repairs a decoded configuration. The input is not mutated; nil
// in yields nil out. Running Normalize on its own output is a no-op.
//
// Beyond filling missing fields, identifiers that duplicate an earlier
// sibling are re-issued: the editor addresses nodes by ID, and a duplicate
// would make half the tree unreachable to mutations.
func (n *Normalizer) Normalize(cfg *ScreenConfig) *ScreenConfig {
	if cfg == nil {
		return nil
	}

	fixed := CloneConfig(cfg)

	if fixed.Name == "" {
		fixed.Name = DefaultConfigName
	}
	now := n.now().UTC()
	if fixed.CreatedAt.IsZero() {
		fixed.CreatedAt = now
	}
	if fixed.UpdatedAt.IsZero() {
		fixed.UpdatedAt = now
	}
	if fixed.Version < 1 {
		fixed.Version = 1
	}

	if fixed.Sections == nil {
		fixed.Sections = []*Section{}
		return fixed
	}

	sectionIDs := make(map[string]struct{}, len(fixed.Sections))
	sections := make([]*Section, 0, len(fixed.Sections))
	for _, section := range fixed.Sections {
		repaired := n.normalizeSection(section)
		if _, dup := sectionIDs[repaired.ID]; dup {
			repaired.ID = n.id()
		}
		sectionIDs[repaired.ID] = struct{}{}
		sections = append(sections, repaired)
	}
	fixed.Sections = sections

	return fixed
}

func (n *Normalizer) normalizeSection(section *Section) *Section {
	if section == nil {
		return &Section{
			ID:       n.id(),
			Type:     SectionBanner,
			Title:    NewSectionTitle,
			Items:    []*Item{},
			Settings: DefaultSectionSettings(true),
		}
	}

	if section.ID == "" {
		section.ID = n.id()
	}
	if !section.Type.Valid() {
		section.Type = SectionBanner
	}
	if section.Title == "" {
		section.Title = DefaultSectionTitle
	}
	if section.Settings.IsZero() {
		section.Settings = DefaultSectionSettings(true)
	}

	itemIDs := make(map[string]struct{}, len(section.Items))
	items := make([]*Item, 0, len(section.Items))
	for _, item := range section.Items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = n.id()
		}
		if _, dup := itemIDs[item.ID]; dup {
			item.ID = n.id()
		}
		itemIDs[item.ID] = struct{}{}
		if !item.Type.Valid() {
			item.Type = ItemText
		}
		if item.Content == nil {
			item.Content = &ItemContent{Title: DefaultItemTitle}
		}
		items = append(items, item)
	}
	section.Items = items

	return section
}

// NormalizeDocument repairs a raw decoded JSON document. It covers the
// malformations a typed decode cannot represent: sections that are not
// objects, items that are strings or numbers, numeric gridColumns, string
// versions. The external identifier is read from "id" with "_id" as a
// fallback, matching the persistence collaborator's wire shape.
func (n *Normalizer) NormalizeDocument(doc map[string]any) *ScreenConfig {
	if doc == nil {
		return nil
	}

	cfg := &ScreenConfig{
		ID:       stringValue(firstPresent(doc, "id", "_id")),
		Name:     stringValue(doc["name"]),
		IsActive: boolValue(doc["isActive"]),
		Version:  intValue(doc["version"]),
	}
	cfg.CreatedAt = timeValue(doc["createdAt"])
	cfg.UpdatedAt = timeValue(doc["updatedAt"])

	rawSections, ok := doc["sections"].([]any)
	if !ok {
		cfg.Sections = nil
		return n.Normalize(cfg)
	}

	sections := make([]*Section, 0, len(rawSections))
	for _, raw := range rawSections {
		sections = append(sections, decodeSection(raw))
	}
	cfg.Sections = sections

	return n.Normalize(cfg)
}

func decodeSection(raw any) *Section {
	doc, ok := raw.(map[string]any)
	if !ok {
		// Normalize synthesizes a default section for nil entries.
		return nil
	}

	section := &Section{
		ID:    stringValue(doc["id"]),
		Type:  SectionType(stringValue(doc["type"])),
		Title: stringValue(doc["title"]),
	}

	if settings, ok := doc["settings"].(map[string]any); ok {
		section.Settings = decodeSettings(settings)
	}

	if rawItems, ok := doc["items"].([]any); ok {
		items := make([]*Item, 0, len(rawItems))
		for _, entry := range rawItems {
			if item := decodeItem(entry); item != nil {
				items = append(items, item)
			}
		}
		section.Items = items
	} else {
		section.Items = []*Item{}
	}

	return section
}

func decodeItem(raw any) *Item {
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	item := &Item{
		ID:   stringValue(doc["id"]),
		Type: ItemType(stringValue(doc["type"])),
	}
	if content, ok := doc["content"].(map[string]any); ok {
		item.Content = decodeContent(content)
	}
	return item
}

func decodeSettings(doc map[string]any) *SectionSettings {
	settings := &SectionSettings{}
	for key, value := range doc {
		switch key {
		case "backgroundColor":
			settings.BackgroundColor = stringValue(value)
		case "padding":
			settings.Padding = stringValue(value)
		case "borderRadius":
			settings.BorderRadius = stringValue(value)
		case "showTitle":
			settings.ShowTitle = boolValue(value)
		case "gradientColor":
			settings.GradientColor = stringValue(value)
		case "gradientDirection":
			settings.GradientDirection = stringValue(value)
		case "useGradient":
			settings.UseGradient = boolValue(value)
		case "gridColumns":
			settings.GridColumns = stringValue(value)
		default:
			if settings.Extra == nil {
				settings.Extra = map[string]any{}
			}
			settings.Extra[key] = value
		}
	}
	return settings
}

func decodeContent(doc map[string]any) *ItemContent {
	content := &ItemContent{}
	for key, value := range doc {
		switch key {
		case "title":
			content.Title = stringValue(value)
		case "subtitle":
			content.Subtitle = stringValue(value)
		case "imageUrl":
			content.ImageURL = stringValue(value)
		case "actionUrl":
			content.ActionURL = stringValue(value)
		case "description":
			content.Description = stringValue(value)
		case "price":
			content.Price = stringValue(value)
		case "url":
			content.URL = stringValue(value)
		case "link":
			content.Link = stringValue(value)
		case "buttonText":
			content.ButtonText = stringValue(value)
		case "tags":
			content.Tags = stringSlice(value)
		case "layout":
			content.Layout = CardLayout(stringValue(value))
		case "showButton":
			content.ShowButton = boolValue(value)
		default:
			if content.Extra == nil {
				content.Extra = map[string]any{}
			}
			content.Extra[key] = value
		}
	}
	return content
}

func firstPresent(doc map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := doc[key]; ok && value != nil && stringValue(value) != "" {
			return value
		}
	}
	return nil
}

func intValue(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func timeValue(value any) time.Time {
	raw := stringValue(value)
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
