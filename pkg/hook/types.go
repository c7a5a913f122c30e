//go:generate mockgen -destination=./mocks/hook.go . Manager

package hook

import (
	"context"
	"fmt"
)

// Type is the point of the launch flow a hook runs at.
type Type string

// Supported hook types.
const (
	PreApply    Type = "pre-apply"
	PostApply   Type = "post-apply"
	PreCleanup  Type = "pre-cleanup"
	PostCleanup Type = "post-cleanup"
)

// Types lists the hook types in the order they fire during a launch.
var Types = []Type{PreApply, PostApply, PreCleanup, PostCleanup}

// ParseType validates name as a hook type.
func ParseType(name string) (Type, error) {
	for _, t := range Types {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported hook type: %s", name)
}

// Hook is a script bound to a hook type.
type Hook struct {
	Type    Type
	Content string
}

// Context carries the overlay paths passed to a hook script.
type Context struct {
	GameDir   string
	SourceDir string
	ModsDir   string
	Vars      map[string]interface{}
}

// Manager runs hook scripts.
type Manager interface {
	// Execute runs the hook of the given type, if one is registered.
	Execute(ctx context.Context, hookType Type, hctx Context) error
	AddHook(hook Hook) error
	RemoveHook(hookType Type) error
	HasHook(hookType Type) bool
}
