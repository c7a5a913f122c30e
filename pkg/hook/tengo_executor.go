package hook

import (
	"context"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/glorpus-work/modlayer/pkg/errors"
)

// TengoExecutor compiles and runs Tengo scripts.
type TengoExecutor struct {
	scripts map[Type]string
	mutex   sync.RWMutex
}

// NewTengoExecutor creates a new Tengo script executor.
func NewTengoExecutor() *TengoExecutor {
	return &TengoExecutor{
		scripts: make(map[Type]string),
	}
}

// Execute runs the script for hookType. A script aborts the launch step by
// setting err to a non-empty string or an error value.
func (e *TengoExecutor) Execute(ctx context.Context, hookType Type, hctx Context) error {
	e.mutex.RLock()
	script, exists := e.scripts[hookType]
	e.mutex.RUnlock()
	if !exists {
		return nil
	}

	s := tengo.NewScript([]byte(script))
	s.SetImports(stdlib.GetModuleMap("fmt", "os", "strings", "text", "time"))

	for k, v := range hctx.Vars {
		if err := s.Add(k, v); err != nil {
			return errors.Wrapf(errors.ErrHookExecution, "%s: variable %s: %v", hookType, k, err)
		}
	}
	_ = s.Add("hookType", string(hookType))
	_ = s.Add("gameDir", hctx.GameDir)
	_ = s.Add("sourceDir", hctx.SourceDir)
	_ = s.Add("modsDir", hctx.ModsDir)
	_ = s.Add("err", "")

	compiled, err := s.RunContext(ctx)
	if err != nil {
		return errors.Wrapf(errors.ErrHookExecution, "%s: %v", hookType, err)
	}

	if errVar := compiled.Get("err"); errVar != nil {
		switch v := errVar.Value().(type) {
		case error:
			return errors.Wrapf(errors.ErrHookScript, "%s: %v", hookType, v)
		case string:
			if v != "" {
				return errors.Wrapf(errors.ErrHookScript, "%s: %s", hookType, v)
			}
		}
	}

	return nil
}

// AddScript adds or replaces the script for hookType.
func (e *TengoExecutor) AddScript(hookType Type, script string) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.scripts[hookType] = script
}

// RemoveScript removes the script for hookType.
func (e *TengoExecutor) RemoveScript(hookType Type) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	delete(e.scripts, hookType)
}

// HasScript checks if a script exists for hookType.
func (e *TengoExecutor) HasScript(hookType Type) bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	_, exists := e.scripts[hookType]
	return exists
}
