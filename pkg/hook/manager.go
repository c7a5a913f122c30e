package hook

import (
	"context"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
)

// DefaultManager is the Tengo backed Manager.
type DefaultManager struct {
	executor *TengoExecutor
}

// NewManager creates a new hook manager.
func NewManager() *DefaultManager {
	return &DefaultManager{
		executor: NewTengoExecutor(),
	}
}

// Execute runs the specified hook type with the given context.
func (m *DefaultManager) Execute(ctx context.Context, hookType Type, hctx Context) error {
	if !m.HasHook(hookType) {
		return nil
	}

	// Copy the context to prevent modifications
	ctxCopy := hctx
	ctxCopy.Vars = make(map[string]interface{}, len(hctx.Vars))
	for k, v := range hctx.Vars {
		ctxCopy.Vars[k] = v
	}

	logger.Debug("Running hook", logger.Fields{"hook": string(hookType), "game_dir": hctx.GameDir})
	return m.executor.Execute(ctx, hookType, ctxCopy)
}

// AddHook adds a new hook, replacing any hook of the same type.
func (m *DefaultManager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return errors.ErrHookTypeEmpty
	}
	if _, err := ParseType(string(hook.Type)); err != nil {
		return err
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook removes a hook of the specified type.
func (m *DefaultManager) RemoveHook(hookType Type) error {
	if hookType == "" {
		return errors.ErrHookTypeEmpty
	}
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook checks if a hook of the specified type exists.
func (m *DefaultManager) HasHook(hookType Type) bool {
	return m.executor.HasScript(hookType)
}
