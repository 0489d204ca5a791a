package buildercmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-screens/internal/builder"
	"github.com/goliatone/go-screens/internal/commands"
	"github.com/goliatone/go-screens/pkg/interfaces"
)

const (
	createConfigMessageType   = "screens.config.create"
	activateConfigMessageType = "screens.config.activate"
	deleteConfigMessageType   = "screens.config.delete"
)

// CreateConfigCommand requests creation of a new screen configuration.
// Sections are optional; they pass through repair before persistence.
type CreateConfigCommand struct {
	ID       string             `json:"id,omitempty"`
	Name     string             `json:"name"`
	Sections []*builder.Section `json:"sections,omitempty"`
	Activate bool               `json:"activate,omitempty"`
}

// Type implements command.Message.
func (CreateConfigCommand) Type() string { return createConfigMessageType }

// Validate ensures the command carries the required attributes before reaching handlers.
func (m CreateConfigCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = validation.NewError("screens.config.create.name_required", "name is required")
	}
	for _, section := range m.Sections {
		if section != nil && section.Type != "" && !section.Type.Valid() {
			errs["sections"] = validation.NewError("screens.config.create.section_type_invalid", "section type is not recognised")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateConfigHandler persists new configurations via the configuration service.
type CreateConfigHandler struct {
	inner *commands.Handler[CreateConfigCommand]
}

// NewCreateConfigHandler constructs a handler wired to the provided service.
func NewCreateConfigHandler(service builder.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateConfigCommand]) *CreateConfigHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CreateConfigCommand) error {
		_, err := service.Create(ctx, builder.CreateConfigInput{
			ID:       msg.ID,
			Name:     msg.Name,
			Sections: msg.Sections,
			Activate: msg.Activate,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CreateConfigCommand]{
		commands.WithLogger[CreateConfigCommand](baseLogger),
		commands.WithOperation[CreateConfigCommand]("config.create"),
		commands.WithMessageFields(func(msg CreateConfigCommand) map[string]any {
			fields := map[string]any{}
			if trimmed := strings.TrimSpace(msg.ID); trimmed != "" {
				fields["config_id"] = trimmed
			}
			if trimmed := strings.TrimSpace(msg.Name); trimmed != "" {
				fields["name"] = trimmed
			}
			if msg.Activate {
				fields["activate"] = true
			}
			if len(fields) == 0 {
				return nil
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CreateConfigCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateConfigHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateConfigCommand].Execute.
func (h *CreateConfigHandler) Execute(ctx context.Context, msg CreateConfigCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ActivateConfigCommand flips the active flag to the named configuration.
type ActivateConfigCommand struct {
	ConfigID string `json:"config_id"`
}

// Type implements command.Message.
func (ActivateConfigCommand) Type() string { return activateConfigMessageType }

// Validate ensures the command addresses a configuration.
func (m ActivateConfigCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.ConfigID) == "" {
		errs["config_id"] = validation.NewError("screens.config.activate.config_id_required", "config_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ActivateConfigHandler switches the served configuration via the service.
type ActivateConfigHandler struct {
	inner *commands.Handler[ActivateConfigCommand]
}

// NewActivateConfigHandler constructs a handler wired to the provided service.
func NewActivateConfigHandler(service builder.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ActivateConfigCommand]) *ActivateConfigHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ActivateConfigCommand) error {
		_, err := service.Activate(ctx, msg.ConfigID)
		return err
	}

	handlerOpts := []commands.HandlerOption[ActivateConfigCommand]{
		commands.WithLogger[ActivateConfigCommand](baseLogger),
		commands.WithOperation[ActivateConfigCommand]("config.activate"),
		commands.WithMessageFields(func(msg ActivateConfigCommand) map[string]any {
			return map[string]any{"config_id": msg.ConfigID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ActivateConfigCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ActivateConfigHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ActivateConfigCommand].Execute.
func (h *ActivateConfigHandler) Execute(ctx context.Context, msg ActivateConfigCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteConfigCommand removes a stored configuration.
type DeleteConfigCommand struct {
	ConfigID string `json:"config_id"`
}

// Type implements command.Message.
func (DeleteConfigCommand) Type() string { return deleteConfigMessageType }

// Validate ensures the command addresses a configuration.
func (m DeleteConfigCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.ConfigID) == "" {
		errs["config_id"] = validation.NewError("screens.config.delete.config_id_required", "config_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteConfigHandler removes configurations via the service.
type DeleteConfigHandler struct {
	inner *commands.Handler[DeleteConfigCommand]
}

// NewDeleteConfigHandler constructs a handler wired to the provided service.
func NewDeleteConfigHandler(service builder.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteConfigCommand]) *DeleteConfigHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeleteConfigCommand) error {
		return service.Delete(ctx, msg.ConfigID)
	}

	handlerOpts := []commands.HandlerOption[DeleteConfigCommand]{
		commands.WithLogger[DeleteConfigCommand](baseLogger),
		commands.WithOperation[DeleteConfigCommand]("config.delete"),
		commands.WithMessageFields(func(msg DeleteConfigCommand) map[string]any {
			return map[string]any{"config_id": msg.ConfigID}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteConfigCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteConfigHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteConfigCommand].Execute.
func (h *DeleteConfigHandler) Execute(ctx context.Context, msg DeleteConfigCommand) error {
	return h.inner.Execute(ctx, msg)
}
