package builder

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *ScreenConfig {
	return &ScreenConfig{
		ID:        "cfg-1",
		Name:      "Home",
		Version:   1,
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Sections: []*Section{{
			ID:    "s-1",
			Type:  SectionBanner,
			Title: "Hero",
			Items: []*Item{{
				ID:      "i-1",
				Type:    ItemImage,
				Content: &ItemContent{Title: "Banner"},
			}},
			Settings: DefaultSectionSettings(true),
		}},
	}
}

func TestValidateConfigAcceptsWellFormed(t *testing.T) {
	if err := ValidateConfig(validConfig()); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateConfigNil(t *testing.T) {
	if err := ValidateConfig(nil); err != nil {
		t.Fatalf("expected nil config to pass, got %v", err)
	}
}

func TestValidateConfigRejectsUnknownSectionType(t *testing.T) {
	cfg := validConfig()
	cfg.Sections[0].Type = "carousel"

	err := ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}

	var docErr *DocumentValidationError
	if !errors.As(err, &docErr) {
		t.Fatalf("expected DocumentValidationError, got %T", err)
	}
	if len(docErr.Issues) == 0 {
		t.Fatal("expected at least one issue recorded")
	}
}

func TestValidateConfigRejectsUnknownItemType(t *testing.T) {
	cfg := validConfig()
	cfg.Sections[0].Items[0].Type = "video"

	if err := ValidateConfig(cfg); !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestValidateConfigRejectsMissingName(t *testing.T) {
	cfg := validConfig()
	cfg.Name = ""

	if err := ValidateConfig(cfg); !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestValidateConfigRejectsEmptySectionID(t *testing.T) {
	cfg := validConfig()
	cfg.Sections[0].ID = ""

	if err := ValidateConfig(cfg); !errors.Is(err, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestValidateConfigAcceptsNormalizerOutput(t *testing.T) {
	n := newTestNormalizer()
	fixed := n.Normalize(&ScreenConfig{
		Sections: []*Section{
			nil,
			{Type: "bogus", Items: []*Item{{Type: "widget"}}},
		},
	})

	if err := ValidateConfig(fixed); err != nil {
		t.Fatalf("expected repaired config to validate, got %v", err)
	}
}
