package screens

import (
	"context"
	"errors"

	"github.com/goliatone/go-screens/internal/builder"
	"github.com/goliatone/go-screens/internal/identity"
	"github.com/goliatone/go-screens/internal/logging"
)

// SeedConfigID returns the deterministic identifier used for a seeded
// configuration with the given name. Stable across restarts, which is what
// makes seeding idempotent.
func SeedConfigID(name string) string {
	return identity.ConfigUUID(name).String()
}

// BuildSeedConfig assembles the starter configuration installed by seeding:
// a hero welcome section and an empty featured grid for editors to fill in.
// Every identifier is derived from the configuration name, so rebuilding the
// seed yields the same tree.
func BuildSeedConfig(name string) *ScreenConfig {
	return &ScreenConfig{
		ID:   SeedConfigID(name),
		Name: name,
		Sections: []*Section{
			{
				ID:    identity.SectionUUID(name, "welcome").String(),
				Type:  SectionHero,
				Title: "Welcome",
				Items: []*Item{
					{
						ID:   identity.ItemUUID(name, "welcome", "intro").String(),
						Type: ItemText,
						Content: &ItemContent{
							Title:    "Welcome",
							Subtitle: "Customize this screen in the builder",
						},
					},
				},
				Settings: DefaultSectionSettings(true),
			},
			{
				ID:       identity.SectionUUID(name, "featured").String(),
				Type:     SectionGrid,
				Title:    "Featured",
				Items:    []*Item{},
				Settings: DefaultSectionSettings(true),
			},
		},
	}
}

func (m *Module) seed(ctx context.Context) error {
	logger := logging.ModuleLogger(m.provider, "screens.seed")
	name := m.cfg.Seed.Name
	seedID := SeedConfigID(name)

	if _, err := m.repo.GetByID(ctx, seedID); err == nil {
		logger.Debug("seed.skip.exists", "config_id", seedID)
		return nil
	} else {
		var nf *builder.NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}

	starter := BuildSeedConfig(name)
	_, err := m.service.Create(ctx, CreateConfigInput{
		ID:       starter.ID,
		Name:     starter.Name,
		Sections: starter.Sections,
		Activate: m.cfg.Seed.Activate,
	})
	if err != nil {
		return err
	}
	logger.Info("seed.installed", "config_id", seedID, "name", name)
	return nil
}
