package screens

import (
	"context"
	"strings"

	"github.com/goliatone/go-screens/internal/builder"
	"github.com/goliatone/go-screens/internal/logging"
	"github.com/goliatone/go-screens/internal/logging/gologger"
	"github.com/goliatone/go-screens/pkg/interfaces"
)

// Core data model exports.
type (
	ScreenConfig    = builder.ScreenConfig
	Section         = builder.Section
	Item            = builder.Item
	SectionSettings = builder.SectionSettings
	ItemContent     = builder.ItemContent
	SectionType     = builder.SectionType
	ItemType        = builder.ItemType
	CardLayout      = builder.CardLayout
	Direction       = builder.Direction
)

// Editing surface exports.
type (
	Editor           = builder.Editor
	SectionPatch     = builder.SectionPatch
	ItemPatch        = builder.ItemPatch
	ItemContentPatch = builder.ItemContentPatch
	Normalizer       = builder.Normalizer
)

// Persistence surface exports.
type (
	ConfigService     = builder.Service
	ConfigRepository  = builder.Repository
	CreateConfigInput = builder.CreateConfigInput
	UpdateConfigInput = builder.UpdateConfigInput
)

// Error exports.
type (
	NotFoundError           = builder.NotFoundError
	DocumentValidationError = builder.DocumentValidationError
)

var (
	ErrConfigNameRequired = builder.ErrConfigNameRequired
	ErrConfigIDRequired   = builder.ErrConfigIDRequired
	ErrConfigExists       = builder.ErrConfigExists
	ErrDocumentInvalid    = builder.ErrDocumentInvalid
	ErrNoActiveConfig     = builder.ErrNoActiveConfig
)

// Section type exports.
const (
	SectionBanner         = builder.SectionBanner
	SectionVerticalList   = builder.SectionVerticalList
	SectionHorizontalList = builder.SectionHorizontalList
	SectionGrid           = builder.SectionGrid
	SectionHero           = builder.SectionHero
)

// Item type exports.
const (
	ItemImage    = builder.ItemImage
	ItemText     = builder.ItemText
	ItemButton   = builder.ItemButton
	ItemProduct  = builder.ItemProduct
	ItemCategory = builder.ItemCategory
)

// Direction exports.
const (
	DirectionUp    = builder.DirectionUp
	DirectionDown  = builder.DirectionDown
	DirectionLeft  = builder.DirectionLeft
	DirectionRight = builder.DirectionRight
)

// ConfigJSON renders a configuration as the pretty-printed JSON document the
// mobile client consumes. Nil yields "{}".
func ConfigJSON(cfg *ScreenConfig) string {
	return builder.ConfigJSON(cfg)
}

// ValidateConfig checks a configuration against the wire schema.
func ValidateConfig(cfg *ScreenConfig) error {
	return builder.ValidateConfig(cfg)
}

// DefaultSectionSettings returns the settings applied to new sections.
func DefaultSectionSettings(showTitle bool) *SectionSettings {
	return builder.DefaultSectionSettings(showTitle)
}

// Module is the top level runtime facade: one configured persistence backend,
// a configuration service on top of it, and factories for editing sessions.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	repo     builder.Repository
	service  builder.Service
}

// New constructs a module from the provided configuration. When seeding is
// enabled the starter configuration is installed before New returns.
func New(ctx context.Context, cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider := cfg.Logging.Provider
	if provider == nil {
		built, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = built
	}

	var repo builder.Repository
	switch strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)) {
	case "", StorageDriverMemory:
		repo = builder.NewMemoryRepository()
	case StorageDriverBun:
		repo = builder.NewBunRepository(cfg.Storage.DB)
	}

	service := builder.NewService(repo,
		builder.WithServiceLogger(logging.ServiceLogger(provider)),
	)

	m := &Module{
		cfg:      cfg,
		provider: provider,
		repo:     repo,
		service:  service,
	}

	if cfg.Seed.Enabled {
		if err := m.seed(ctx); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Configs returns the configuration service.
func (m *Module) Configs() ConfigService {
	return m.service
}

// Repository exposes the underlying persistence layer for advanced integrations.
func (m *Module) Repository() ConfigRepository {
	return m.repo
}

// NewEditor starts an editing session using the module's logging setup.
// Additional options may override the defaults.
func (m *Module) NewEditor(opts ...builder.EditorOption) *Editor {
	base := []builder.EditorOption{
		builder.WithLogger(logging.BuilderLogger(m.provider)),
	}
	return builder.NewEditor(append(base, opts...)...)
}

// NewNormalizer returns a repairer for externally sourced configurations.
func (m *Module) NewNormalizer(opts ...builder.NormalizerOption) *Normalizer {
	return builder.NewNormalizer(opts...)
}

// Logger returns a named logger from the module's provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}
