package builder

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-screens/internal/identity"
	"github.com/goliatone/go-screens/internal/logging"
	"github.com/goliatone/go-screens/pkg/interfaces"
)

// Service manages the library of persisted screen configurations. It mirrors
// the surface the mobile backend exposes: CRUD plus activation of the single
// configuration served to the mobile client.
type Service interface {
	List(ctx context.Context) ([]*ScreenConfig, error)
	Get(ctx context.Context, id string) (*ScreenConfig, error)
	GetActive(ctx context.Context) (*ScreenConfig, error)
	Create(ctx context.Context, input CreateConfigInput) (*ScreenConfig, error)
	Update(ctx context.Context, input UpdateConfigInput) (*ScreenConfig, error)
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) (*ScreenConfig, error)
}

// CreateConfigInput captures the attributes for a new configuration.
// ID is optional; seeded fixtures pass a deterministic identifier, everything
// else gets a fresh one.
type CreateConfigInput struct {
	ID       string
	Name     string
	Sections []*Section
	Activate bool
}

// Validate checks the closed type sets before any repair happens: a caller
// constructing sections programmatically should learn about a typo rather
// than have it silently rewritten to a default.
func (i CreateConfigInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(i.Name) == "" {
		errs["name"] = ErrConfigNameRequired
	}
	for _, section := range i.Sections {
		if section == nil {
			continue
		}
		if section.Type != "" && !section.Type.Valid() {
			errs["sections"] = ErrSectionTypeInvalid
		}
		for _, item := range section.Items {
			if item != nil && item.Type != "" && !item.Type.Valid() {
				errs["items"] = ErrItemTypeInvalid
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateConfigInput carries a partial configuration update. Nil fields are
// left untouched; Sections replaces the whole tree when non-nil.
type UpdateConfigInput struct {
	ID       string
	Name     *string
	Sections []*Section
	IsActive *bool
}

// Validate ensures the update addresses a configuration and keeps the
// closed type sets.
func (i UpdateConfigInput) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(i.ID) == "" {
		errs["id"] = ErrConfigIDRequired
	}
	if i.Name != nil && strings.TrimSpace(*i.Name) == "" {
		errs["name"] = ErrConfigNameRequired
	}
	for _, section := range i.Sections {
		if section != nil && section.Type != "" && !section.Type.Valid() {
			errs["sections"] = ErrSectionTypeInvalid
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ServiceOption configures the configuration service.
type ServiceOption func(*service)

// WithServiceClock overrides the time source used for timestamps.
func WithServiceClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithServiceIDGenerator overrides the identifier source for new configurations.
func WithServiceIDGenerator(generator func() string) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithServiceLogger injects the service logger. Defaults to a no-op logger.
func WithServiceLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo       Repository
	normalizer *Normalizer
	now        func() time.Time
	id         func() string
	logger     interfaces.Logger
}

// NewService constructs the configuration service.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		now:    time.Now,
		id:     identity.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalizer = NewNormalizer(
		WithNormalizerClock(s.now),
		WithNormalizerIDGenerator(s.id),
	)
	return s
}

func (s *service) List(ctx context.Context) ([]*ScreenConfig, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*ScreenConfig, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrConfigIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetActive(ctx context.Context) (*ScreenConfig, error) {
	record, err := s.repo.GetActive(ctx)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return nil, ErrNoActiveConfig
		}
		return nil, err
	}
	return record, nil
}

func (s *service) Create(ctx context.Context, input CreateConfigInput) (*ScreenConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	cfg := &ScreenConfig{
		ID:        strings.TrimSpace(input.ID),
		Name:      strings.TrimSpace(input.Name),
		Sections:  input.Sections,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cfg.ID == "" {
		cfg.ID = s.id()
	}

	cfg = s.normalizer.Normalize(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Info("service.config.created", "config_id", record.ID, "name", record.Name)

	if input.Activate {
		return s.Activate(ctx, record.ID)
	}
	return record, nil
}

func (s *service) Update(ctx context.Context, input UpdateConfigInput) (*ScreenConfig, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = strings.TrimSpace(*input.Name)
	}
	if input.Sections != nil {
		existing.Sections = input.Sections
	}
	if input.IsActive != nil {
		existing.IsActive = *input.IsActive
	}
	existing.Version++
	existing.UpdatedAt = s.now().UTC()

	existing = s.normalizer.Normalize(existing)
	if err := ValidateConfig(existing); err != nil {
		return nil, err
	}

	record, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	s.logger.Info("service.config.updated", "config_id", record.ID, "version", record.Version)
	return record, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrConfigIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("service.config.deleted", "config_id", id)
	return nil
}

func (s *service) Activate(ctx context.Context, id string) (*ScreenConfig, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrConfigIDRequired
	}
	record, err := s.repo.Activate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("service.config.activated", "config_id", record.ID)
	return record, nil
}
