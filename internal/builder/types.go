package builder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// SectionType tags a section with its rendering strategy. The engine treats
// the tag opaquely beyond membership in the closed set.
type SectionType string

const (
	SectionBanner         SectionType = "banner"
	SectionVerticalList   SectionType = "verticalList"
	SectionHorizontalList SectionType = "horizontalList"
	SectionGrid           SectionType = "grid"
	SectionHero           SectionType = "hero"
)

// SectionTypes returns the closed set of section variants in canonical order.
func SectionTypes() []SectionType {
	return []SectionType{SectionBanner, SectionVerticalList, SectionHorizontalList, SectionGrid, SectionHero}
}

// Valid reports whether the tag belongs to the closed section set.
func (t SectionType) Valid() bool {
	switch t {
	case SectionBanner, SectionVerticalList, SectionHorizontalList, SectionGrid, SectionHero:
		return true
	}
	return false
}

// ItemType tags an item with its content kind.
type ItemType string

const (
	ItemImage    ItemType = "image"
	ItemText     ItemType = "text"
	ItemButton   ItemType = "button"
	ItemProduct  ItemType = "product"
	ItemCategory ItemType = "category"
)

// ItemTypes returns the closed set of item variants in canonical order.
func ItemTypes() []ItemType {
	return []ItemType{ItemImage, ItemText, ItemButton, ItemProduct, ItemCategory}
}

// Valid reports whether the tag belongs to the closed item set.
func (t ItemType) Valid() bool {
	switch t {
	case ItemImage, ItemText, ItemButton, ItemProduct, ItemCategory:
		return true
	}
	return false
}

// CardLayout selects how a product or image card arranges its media and copy.
type CardLayout string

const (
	LayoutVertical          CardLayout = "vertical"
	LayoutHorizontal        CardLayout = "horizontal"
	LayoutHorizontalReverse CardLayout = "horizontal-reverse"
	LayoutOverlay           CardLayout = "overlay"
)

// ScreenConfig is the root aggregate: one app screen as an ordered tree of
// sections. ID is the stable external identifier and stays empty while the
// configuration has not been persisted. Slice order is the sole source of
// display order.
type ScreenConfig struct {
	bun.BaseModel `bun:"table:screen_configs,alias:sc"`

	ID        string     `bun:"id,pk" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Sections  []*Section `bun:"sections,type:jsonb,notnull" json:"sections"`
	IsActive  bool       `bun:"is_active,notnull,default:false" json:"isActive"`
	Version   int        `bun:"version,notnull,default:1" json:"version"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`
}

// Section groups items rendered together under one layout strategy.
// IDs are unique among siblings and immutable once assigned.
type Section struct {
	ID       string           `json:"id"`
	Type     SectionType      `json:"type"`
	Title    string           `json:"title,omitempty"`
	Items    []*Item          `json:"items"`
	Settings *SectionSettings `json:"settings,omitempty"`
}

// Item is a single content unit inside a section.
type Item struct {
	ID      string       `json:"id"`
	Type    ItemType     `json:"type"`
	Content *ItemContent `json:"content"`
}

// SectionSettings captures the known display settings plus an escape hatch
// for forward-compatible keys supplied by newer editors. Unknown JSON keys
// round-trip through Extra.
type SectionSettings struct {
	BackgroundColor   string
	Padding           string
	BorderRadius      string
	ShowTitle         bool
	GradientColor     string
	GradientDirection string
	UseGradient       bool
	GridColumns       string
	Extra             map[string]any
}

// DefaultSectionSettings returns the settings applied to freshly created and
// repaired sections.
func DefaultSectionSettings(showTitle bool) *SectionSettings {
	return &SectionSettings{
		BackgroundColor: "#ffffff",
		Padding:         "15px",
		BorderRadius:    "8px",
		ShowTitle:       showTitle,
	}
}

// IsZero reports whether no setting carries a value. A present-but-empty
// settings object is treated the same as an absent one during repair.
func (s *SectionSettings) IsZero() bool {
	if s == nil {
		return true
	}
	return s.BackgroundColor == "" &&
		s.Padding == "" &&
		s.BorderRadius == "" &&
		!s.ShowTitle &&
		s.GradientColor == "" &&
		s.GradientDirection == "" &&
		!s.UseGradient &&
		s.GridColumns == "" &&
		len(s.Extra) == 0
}

// MarshalJSON flattens known settings and Extra into a single object.
// Known fields win over Extra on key collisions.
func (s SectionSettings) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.Extra)+8)
	for key, value := range s.Extra {
		doc[key] = value
	}
	if s.BackgroundColor != "" {
		doc["backgroundColor"] = s.BackgroundColor
	}
	if s.Padding != "" {
		doc["padding"] = s.Padding
	}
	if s.BorderRadius != "" {
		doc["borderRadius"] = s.BorderRadius
	}
	doc["showTitle"] = s.ShowTitle
	if s.GradientColor != "" {
		doc["gradientColor"] = s.GradientColor
	}
	if s.GradientDirection != "" {
		doc["gradientDirection"] = s.GradientDirection
	}
	if s.UseGradient {
		doc["useGradient"] = true
	}
	if s.GridColumns != "" {
		doc["gridColumns"] = s.GridColumns
	}
	return json.Marshal(doc)
}

// UnmarshalJSON splits incoming keys into known settings and Extra.
// gridColumns accepts both string and numeric encodings.
func (s *SectionSettings) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := SectionSettings{}
	for key, value := range doc {
		switch key {
		case "backgroundColor":
			out.BackgroundColor = stringValue(value)
		case "padding":
			out.Padding = stringValue(value)
		case "borderRadius":
			out.BorderRadius = stringValue(value)
		case "showTitle":
			out.ShowTitle = boolValue(value)
		case "gradientColor":
			out.GradientColor = stringValue(value)
		case "gradientDirection":
			out.GradientDirection = stringValue(value)
		case "useGradient":
			out.UseGradient = boolValue(value)
		case "gridColumns":
			out.GridColumns = stringValue(value)
		default:
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra[key] = value
		}
	}
	*s = out
	return nil
}

// ItemContent captures the known display fields plus an Extra escape hatch
// for extension keys. No field is required; the rendering layer supplies
// presentational defaults.
type ItemContent struct {
	Title       string
	Subtitle    string
	ImageURL    string
	ActionURL   string
	Description string
	Price       string
	URL         string
	Link        string
	ButtonText  string
	Tags        []string
	Layout      CardLayout
	ShowButton  bool
	Extra       map[string]any
}

// MarshalJSON flattens content fields and Extra into a single object. Title
// is always present, matching the shape produced by item creation.
func (c ItemContent) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(c.Extra)+12)
	for key, value := range c.Extra {
		doc[key] = value
	}
	doc["title"] = c.Title
	if c.Subtitle != "" {
		doc["subtitle"] = c.Subtitle
	}
	if c.ImageURL != "" {
		doc["imageUrl"] = c.ImageURL
	}
	if c.ActionURL != "" {
		doc["actionUrl"] = c.ActionURL
	}
	if c.Description != "" {
		doc["description"] = c.Description
	}
	if c.Price != "" {
		doc["price"] = c.Price
	}
	if c.URL != "" {
		doc["url"] = c.URL
	}
	if c.Link != "" {
		doc["link"] = c.Link
	}
	if c.ButtonText != "" {
		doc["buttonText"] = c.ButtonText
	}
	if len(c.Tags) > 0 {
		doc["tags"] = c.Tags
	}
	if c.Layout != "" {
		doc["layout"] = c.Layout
	}
	if c.ShowButton {
		doc["showButton"] = true
	}
	return json.Marshal(doc)
}

// UnmarshalJSON splits incoming keys into known content fields and Extra.
func (c *ItemContent) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := ItemContent{}
	for key, value := range doc {
		switch key {
		case "title":
			out.Title = stringValue(value)
		case "subtitle":
			out.Subtitle = stringValue(value)
		case "imageUrl":
			out.ImageURL = stringValue(value)
		case "actionUrl":
			out.ActionURL = stringValue(value)
		case "description":
			out.Description = stringValue(value)
		case "price":
			out.Price = stringValue(value)
		case "url":
			out.URL = stringValue(value)
		case "link":
			out.Link = stringValue(value)
		case "buttonText":
			out.ButtonText = stringValue(value)
		case "tags":
			out.Tags = stringSlice(value)
		case "layout":
			out.Layout = CardLayout(stringValue(value))
		case "showButton":
			out.ShowButton = boolValue(value)
		default:
			if out.Extra == nil {
				out.Extra = map[string]any{}
			}
			out.Extra[key] = value
		}
	}
	*c = out
	return nil
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func stringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			out = append(out, stringValue(entry))
		}
		return out
	default:
		return nil
	}
}
