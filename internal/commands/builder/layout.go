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
	reorderSectionMessageType = "screens.section.reorder"
	moveItemMessageType       = "screens.item.move"
)

// ReorderSectionCommand nudges a section one position within the loaded
// configuration. Sections only honour vertical directions; a horizontal
// direction passes validation but the editor treats it as a no-op.
type ReorderSectionCommand struct {
	SectionID string            `json:"section_id"`
	Direction builder.Direction `json:"direction"`
}

// Type implements command.Message.
func (ReorderSectionCommand) Type() string { return reorderSectionMessageType }

// Validate ensures the command carries a target and a known direction.
func (m ReorderSectionCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.SectionID) == "" {
		errs["section_id"] = validation.NewError("screens.section.reorder.section_id_required", "section_id is required")
	}
	if !m.Direction.Valid() {
		errs["direction"] = builder.ErrDirectionInvalid
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderSectionHandler applies section moves to an editor session.
type ReorderSectionHandler struct {
	inner *commands.Handler[ReorderSectionCommand]
}

// NewReorderSectionHandler constructs a handler bound to the provided editor.
func NewReorderSectionHandler(editor *builder.Editor, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderSectionCommand]) *ReorderSectionHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReorderSectionCommand) error {
		editor.MoveSection(msg.SectionID, msg.Direction)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReorderSectionCommand]{
		commands.WithLogger[ReorderSectionCommand](baseLogger),
		commands.WithOperation[ReorderSectionCommand]("section.reorder"),
		commands.WithMessageFields(func(msg ReorderSectionCommand) map[string]any {
			return map[string]any{
				"section_id": msg.SectionID,
				"direction":  string(msg.Direction),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderSectionCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderSectionHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderSectionCommand].Execute.
func (h *ReorderSectionHandler) Execute(ctx context.Context, msg ReorderSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MoveItemCommand relocates an item within its section (up/down) or into the
// neighbouring section (left/right).
type MoveItemCommand struct {
	SectionID string            `json:"section_id"`
	ItemID    string            `json:"item_id"`
	Direction builder.Direction `json:"direction"`
}

// Type implements command.Message.
func (MoveItemCommand) Type() string { return moveItemMessageType }

// Validate ensures the command carries both identifiers and a known direction.
func (m MoveItemCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.SectionID) == "" {
		errs["section_id"] = validation.NewError("screens.item.move.section_id_required", "section_id is required")
	}
	if strings.TrimSpace(m.ItemID) == "" {
		errs["item_id"] = validation.NewError("screens.item.move.item_id_required", "item_id is required")
	}
	if !m.Direction.Valid() {
		errs["direction"] = builder.ErrDirectionInvalid
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MoveItemHandler applies item moves to an editor session.
type MoveItemHandler struct {
	inner *commands.Handler[MoveItemCommand]
}

// NewMoveItemHandler constructs a handler bound to the provided editor.
func NewMoveItemHandler(editor *builder.Editor, logger interfaces.Logger, opts ...commands.HandlerOption[MoveItemCommand]) *MoveItemHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg MoveItemCommand) error {
		editor.MoveItem(msg.SectionID, msg.ItemID, msg.Direction)
		return nil
	}

	handlerOpts := []commands.HandlerOption[MoveItemCommand]{
		commands.WithLogger[MoveItemCommand](baseLogger),
		commands.WithOperation[MoveItemCommand]("item.move"),
		commands.WithMessageFields(func(msg MoveItemCommand) map[string]any {
			return map[string]any{
				"section_id": msg.SectionID,
				"item_id":    msg.ItemID,
				"direction":  string(msg.Direction),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[MoveItemCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MoveItemHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MoveItemCommand].Execute.
func (h *MoveItemHandler) Execute(ctx context.Context, msg MoveItemCommand) error {
	return h.inner.Execute(ctx, msg)
}
