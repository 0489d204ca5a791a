package builder

import (
	"sync"
	"time"

	"github.com/goliatone/go-screens/internal/identity"
	"github.com/goliatone/go-screens/internal/logging"
	"github.com/goliatone/go-screens/pkg/interfaces"
)

// Direction names the four relocation directions understood by move
// operations. Sections only honour up/down; items honour all four, where
// left/right relocate the item into the neighbouring section.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Valid reports whether the direction belongs to the closed set.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

// SectionPatch carries a partial section update. Nil fields are left
// untouched. Settings replaces the entire settings record when present:
// callers submitting a settings form must send the full desired bag, since
// the editor does not deep-merge at the section level. Item content updates
// behave differently, see ItemPatch.
type SectionPatch struct {
	Type     *SectionType
	Title    *string
	Settings *SectionSettings
}

// ItemPatch carries a partial item update. Content is merged key by key:
// fields absent from the patch keep their prior values.
type ItemPatch struct {
	Type    *ItemType
	Content *ItemContentPatch
}

// ItemContentPatch mirrors ItemContent with optional fields for merge-style
// updates. Extra keys are merged into the item's Extra bag.
type ItemContentPatch struct {
	Title       *string
	Subtitle    *string
	ImageURL    *string
	ActionURL   *string
	Description *string
	Price       *string
	URL         *string
	Link        *string
	ButtonText  *string
	Tags        []string
	Layout      *CardLayout
	ShowButton  *bool
	Extra       map[string]any
}

func (p *ItemContentPatch) applyTo(content *ItemContent) {
	if p == nil || content == nil {
		return
	}
	if p.Title != nil {
		content.Title = *p.Title
	}
	if p.Subtitle != nil {
		content.Subtitle = *p.Subtitle
	}
	if p.ImageURL != nil {
		content.ImageURL = *p.ImageURL
	}
	if p.ActionURL != nil {
		content.ActionURL = *p.ActionURL
	}
	if p.Description != nil {
		content.Description = *p.Description
	}
	if p.Price != nil {
		content.Price = *p.Price
	}
	if p.URL != nil {
		content.URL = *p.URL
	}
	if p.Link != nil {
		content.Link = *p.Link
	}
	if p.ButtonText != nil {
		content.ButtonText = *p.ButtonText
	}
	if p.Tags != nil {
		content.Tags = cloneStrings(p.Tags)
	}
	if p.Layout != nil {
		content.Layout = *p.Layout
	}
	if p.ShowButton != nil {
		content.ShowButton = *p.ShowButton
	}
	if len(p.Extra) > 0 {
		if content.Extra == nil {
			content.Extra = make(map[string]any, len(p.Extra))
		}
		for key, value := range cloneMap(p.Extra) {
			content.Extra[key] = value
		}
	}
}

// EditorOption configures an editor session.
type EditorOption func(*Editor)

// WithClock overrides the time source used for UpdatedAt stamps.
func WithClock(clock func() time.Time) EditorOption {
	return func(e *Editor) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier source for new sections and items.
func WithIDGenerator(generator func() string) EditorOption {
	return func(e *Editor) {
		if generator != nil {
			e.id = generator
		}
	}
}

// WithLogger injects the session logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor owns one in-memory screen configuration and the selection cursor
// pointing into it. It is the single source of truth while a configuration
// is being edited: renderers read snapshots, mutations go through the
// methods below, and persistence happens by handing Config() to a Service.
//
// The contract is single-writer (one editing surface issues commands one at
// a time); the internal mutex only keeps concurrent reads safe.
//
// Every mutation on a missing configuration or an unknown identifier is a
// silent no-op. Callers needing feedback check preconditions via reads.
//
// Replacing the configuration wholesale via SetConfig clears the selection
// cursor: a cursor into a tree that was just swapped out has nothing left
// to reference.
type Editor struct {
	mu                sync.RWMutex
	config            *ScreenConfig
	selectedSectionID string
	selectedItemID    string

	now    func() time.Time
	id     func() string
	logger interfaces.Logger
}

// NewEditor constructs an empty editing session. Load a configuration with
// SetConfig before issuing mutations.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{
		now:    time.Now,
		id:     identity.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetConfig replaces the entire tree. A nil config resets the session to
// the unloaded state. No structural validation happens here: run external
// input through a Normalizer first. The selection cursor is cleared.
func (e *Editor) SetConfig(cfg *ScreenConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = CloneConfig(cfg)
	e.selectedSectionID = ""
	e.selectedItemID = ""
}

// Config returns a deep-cloned snapshot of the current configuration, or
// nil when nothing is loaded.
func (e *Editor) Config() *ScreenConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return CloneConfig(e.config)
}

// HasConfig reports whether a configuration is loaded. An empty sections
// list still counts as loaded.
func (e *Editor) HasConfig() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config != nil
}

// AddSection appends a new section with default settings, stamps the tree,
// and selects the new section. Returns a snapshot of the created section,
// or nil when no configuration is loaded.
func (e *Editor) AddSection(typ SectionType, title string) *Section {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config == nil {
		return nil
	}

	section := &Section{
		ID:       e.id(),
		Type:     typ,
		Title:    title,
		Items:    []*Item{},
		Settings: DefaultSectionSettings(title != ""),
	}
	e.config.Sections = append(e.config.Sections, section)
	e.touch()

	e.selectedSectionID = section.ID
	e.selectedItemID = ""

	e.logger.Debug("editor.section.added", "section_id", section.ID, "type", string(typ))
	return cloneSection(section)
}

// UpdateSection shallow-merges the patch into the section: nil patch fields
// are untouched, a non-nil Settings replaces the whole settings record.
// No-op when the section does not exist.
func (e *Editor) UpdateSection(sectionID string, patch SectionPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	section := e.findSection(sectionID)
	if section == nil {
		return
	}

	if patch.Type != nil {
		section.Type = *patch.Type
	}
	if patch.Title != nil {
		section.Title = *patch.Title
	}
	if patch.Settings != nil {
		section.Settings = cloneSettings(patch.Settings)
	}
	e.touch()
}

// DeleteSection removes the section and every item it contains. When the
// removed section was selected, both cursor fields are cleared in the same
// critical section as the removal.
func (e *Editor) DeleteSection(sectionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config == nil {
		return
	}

	index := e.sectionIndex(sectionID)
	if index < 0 {
		return
	}

	e.config.Sections = append(e.config.Sections[:index], e.config.Sections[index+1:]...)
	e.touch()

	if e.selectedSectionID == sectionID {
		e.selectedSectionID = ""
		e.selectedItemID = ""
	}

	e.logger.Debug("editor.section.deleted", "section_id", sectionID)
}

// MoveSection swaps the section with its neighbour. Moves past either
// boundary are no-ops, as are left/right directions at the section level.
func (e *Editor) MoveSection(sectionID string, dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config == nil {
		return
	}

	index := e.sectionIndex(sectionID)
	if index < 0 {
		return
	}

	var target int
	switch dir {
	case DirectionUp:
		target = index - 1
	case DirectionDown:
		target = index + 1
	default:
		return
	}
	if target < 0 || target >= len(e.config.Sections) {
		return
	}

	sections := e.config.Sections
	sections[index], sections[target] = sections[target], sections[index]
	e.touch()
}

// AddItem appends a new item to the named section and selects it. The
// content starts as an empty title overlaid with the supplied overrides.
// Returns a snapshot of the created item, or nil when the section does not
// exist.
func (e *Editor) AddItem(sectionID string, typ ItemType, overrides *ItemContentPatch) *Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	section := e.findSection(sectionID)
	if section == nil {
		return nil
	}

	content := &ItemContent{Title: ""}
	overrides.applyTo(content)

	item := &Item{
		ID:      e.id(),
		Type:    typ,
		Content: content,
	}
	section.Items = append(section.Items, item)
	e.touch()

	e.selectedSectionID = sectionID
	e.selectedItemID = item.ID

	e.logger.Debug("editor.item.added", "section_id", sectionID, "item_id", item.ID, "type", string(typ))
	return cloneItem(item)
}

// UpdateItem merges the patch into the item. Content merges key by key, so
// previously set fields survive unless the patch overrides them.
func (e *Editor) UpdateItem(sectionID, itemID string, patch ItemPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, item := e.findItem(sectionID, itemID)
	if item == nil {
		return
	}

	if patch.Type != nil {
		item.Type = *patch.Type
	}
	if patch.Content != nil {
		if item.Content == nil {
			item.Content = &ItemContent{}
		}
		patch.Content.applyTo(item.Content)
	}
	e.touch()
}

// DeleteItem removes the item from its section. When the removed item was
// selected, only the item cursor is cleared; the section stays selected.
func (e *Editor) DeleteItem(sectionID, itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	section := e.findSection(sectionID)
	if section == nil {
		return
	}

	index := itemIndex(section, itemID)
	if index < 0 {
		return
	}

	section.Items = append(section.Items[:index], section.Items[index+1:]...)
	e.touch()

	if e.selectedItemID == itemID {
		e.selectedItemID = ""
	}

	e.logger.Debug("editor.item.deleted", "section_id", sectionID, "item_id", itemID)
}

// MoveItem relocates the item. Up/down swap with the adjacent item in the
// same section and no-op at the boundaries. Left/right move the item to the
// previous/next section, appended at the end; the selection follows the
// item into its new section. No-op when there is no section in that
// direction.
func (e *Editor) MoveItem(sectionID, itemID string, dir Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config == nil {
		return
	}

	sectionIdx := e.sectionIndex(sectionID)
	if sectionIdx < 0 {
		return
	}
	section := e.config.Sections[sectionIdx]

	index := itemIndex(section, itemID)
	if index < 0 {
		return
	}

	switch dir {
	case DirectionUp, DirectionDown:
		target := index - 1
		if dir == DirectionDown {
			target = index + 1
		}
		if target < 0 || target >= len(section.Items) {
			return
		}
		section.Items[index], section.Items[target] = section.Items[target], section.Items[index]

	case DirectionLeft, DirectionRight:
		targetIdx := sectionIdx - 1
		if dir == DirectionRight {
			targetIdx = sectionIdx + 1
		}
		if targetIdx < 0 || targetIdx >= len(e.config.Sections) {
			return
		}

		moved := section.Items[index]
		section.Items = append(section.Items[:index], section.Items[index+1:]...)

		target := e.config.Sections[targetIdx]
		target.Items = append(target.Items, moved)

		e.selectedSectionID = target.ID
		e.selectedItemID = moved.ID

	default:
		return
	}

	e.touch()
}

// SelectSection sets the section cursor and unconditionally clears the item
// cursor. An empty id clears the selection entirely.
func (e *Editor) SelectSection(sectionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selectedSectionID = sectionID
	e.selectedItemID = ""
}

// SelectItem sets both cursor fields together. Passing an empty itemID
// reassigns the section cursor while explicitly deselecting the item.
func (e *Editor) SelectItem(sectionID, itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selectedSectionID = sectionID
	e.selectedItemID = itemID
}

// ClearSelection resets both cursor fields.
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selectedSectionID = ""
	e.selectedItemID = ""
}

// SelectedSectionID returns the raw section cursor.
func (e *Editor) SelectedSectionID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectedSectionID
}

// SelectedItemID returns the raw item cursor.
func (e *Editor) SelectedItemID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selectedItemID
}

// SelectedSection resolves the section cursor against the live tree on
// every read. A stale cursor yields nil rather than a dangling reference.
func (e *Editor) SelectedSection() *Section {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.selectedSectionID == "" {
		return nil
	}
	return cloneSection(e.findSection(e.selectedSectionID))
}

// SelectedItem resolves the item cursor within the selected section.
func (e *Editor) SelectedItem() *Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.selectedSectionID == "" || e.selectedItemID == "" {
		return nil
	}
	_, item := e.findItem(e.selectedSectionID, e.selectedItemID)
	return cloneItem(item)
}

// ToJSON renders the current configuration per ConfigJSON.
func (e *Editor) ToJSON() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ConfigJSON(e.config)
}

func (e *Editor) touch() {
	if e.config != nil {
		e.config.UpdatedAt = e.now().UTC()
	}
}

func (e *Editor) sectionIndex(sectionID string) int {
	if e.config == nil || sectionID == "" {
		return -1
	}
	for i, section := range e.config.Sections {
		if section != nil && section.ID == sectionID {
			return i
		}
	}
	return -1
}

func (e *Editor) findSection(sectionID string) *Section {
	index := e.sectionIndex(sectionID)
	if index < 0 {
		return nil
	}
	return e.config.Sections[index]
}

func (e *Editor) findItem(sectionID, itemID string) (*Section, *Item) {
	section := e.findSection(sectionID)
	if section == nil || itemID == "" {
		return nil, nil
	}
	index := itemIndex(section, itemID)
	if index < 0 {
		return section, nil
	}
	return section, section.Items[index]
}

func itemIndex(section *Section, itemID string) int {
	for i, item := range section.Items {
		if item != nil && item.ID == itemID {
			return i
		}
	}
	return -1
}
