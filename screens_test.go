package screens_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	screens "github.com/goliatone/go-screens"
)

func newMemoryModule(t *testing.T, cfg screens.Config) *screens.Module {
	t.Helper()
	module, err := screens.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := screens.DefaultConfig()
	cfg.Storage.Driver = "postgres"

	if _, err := screens.New(context.Background(), cfg); !errors.Is(err, screens.ErrStorageDriverUnknown) {
		t.Fatalf("expected config validation error, got %v", err)
	}
}

func TestModuleConfigLifecycle(t *testing.T) {
	module := newMemoryModule(t, screens.DefaultConfig())
	ctx := context.Background()
	svc := module.Configs()

	created, err := svc.Create(ctx, screens.CreateConfigInput{
		Name: "Home",
		Sections: []*screens.Section{
			{Type: screens.SectionBanner, Title: "Hero"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Activate(ctx, created.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	active, err := svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != created.ID {
		t.Fatalf("expected %q active, got %q", created.ID, active.ID)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetActive(ctx); !errors.Is(err, screens.ErrNoActiveConfig) {
		t.Fatalf("expected ErrNoActiveConfig, got %v", err)
	}
}

func TestModuleEditorRoundTripThroughService(t *testing.T) {
	module := newMemoryModule(t, screens.DefaultConfig())
	ctx := context.Background()

	// Compose in an editor session, persist, reload into a fresh session.
	editor := module.NewEditor()
	editor.SetConfig(&screens.ScreenConfig{Name: "Draft", Sections: []*screens.Section{}})
	section := editor.AddSection(screens.SectionGrid, "Featured")
	title := "Shoes"
	editor.AddItem(section.ID, screens.ItemProduct, &screens.ItemContentPatch{Title: &title})

	draft := editor.Config()
	stored, err := module.Configs().Create(ctx, screens.CreateConfigInput{
		Name:     draft.Name,
		Sections: draft.Sections,
	})
	if err != nil {
		t.Fatalf("persist draft: %v", err)
	}

	reloaded := module.NewEditor()
	reloaded.SetConfig(stored)
	if !reloaded.HasConfig() {
		t.Fatal("expected config loaded")
	}
	got := reloaded.Config()
	if len(got.Sections) != 1 || got.Sections[0].Items[0].Content.Title != "Shoes" {
		t.Fatalf("unexpected reloaded tree: %+v", got.Sections)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(reloaded.ToJSON()), &decoded); err != nil {
		t.Fatalf("export should decode: %v", err)
	}
}

func TestModuleSeed(t *testing.T) {
	cfg := screens.DefaultConfig()
	cfg.Seed.Enabled = true
	cfg.Seed.Name = "Home"
	cfg.Seed.Activate = true

	module := newMemoryModule(t, cfg)
	ctx := context.Background()

	active, err := module.Configs().GetActive(ctx)
	if err != nil {
		t.Fatalf("expected seeded active config: %v", err)
	}
	if active.ID != screens.SeedConfigID("Home") {
		t.Fatalf("expected deterministic seed id, got %q", active.ID)
	}
	if len(active.Sections) != 2 {
		t.Fatalf("expected starter sections, got %d", len(active.Sections))
	}

	// The derived identifier is stable, so re-installing the same seed is
	// rejected as a duplicate rather than creating a second record.
	seed := screens.BuildSeedConfig("Home")
	_, err = module.Configs().Create(ctx, screens.CreateConfigInput{
		ID:       seed.ID,
		Name:     seed.Name,
		Sections: seed.Sections,
	})
	if !errors.Is(err, screens.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
}

func TestBuildSeedConfigDeterministic(t *testing.T) {
	first := screens.BuildSeedConfig("Home")
	second := screens.BuildSeedConfig("Home")

	if first.ID != second.ID {
		t.Fatalf("expected stable config id, got %q vs %q", first.ID, second.ID)
	}
	if first.Sections[0].ID != second.Sections[0].ID {
		t.Fatal("expected stable section ids")
	}
	if first.Sections[0].Items[0].ID != second.Sections[0].Items[0].ID {
		t.Fatal("expected stable item ids")
	}

	other := screens.BuildSeedConfig("Other")
	if other.ID == first.ID {
		t.Fatal("expected distinct ids for distinct names")
	}
}
