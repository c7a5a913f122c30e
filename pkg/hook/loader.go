package hook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/modlayer/pkg/errors"
)

// FileExtension is the extension of hook script files.
const FileExtension = ".tengo"

// LoadDir loads every <hook-type>.tengo file in dir into manager.
// A missing dir is not an error; files named after unknown types are skipped.
func LoadDir(manager Manager, dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read hooks directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != FileExtension {
			continue
		}
		hookType, err := ParseType(strings.TrimSuffix(entry.Name(), FileExtension))
		if err != nil {
			continue
		}
		if err := loadFile(manager, hookType, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// LoadFiles loads the scripts named in files, keyed by hook type. Unlike
// LoadDir every key must be a known hook type and every file must exist.
func LoadFiles(manager Manager, files map[string]string) error {
	for name, path := range files {
		hookType, err := ParseType(name)
		if err != nil {
			return errors.Wrap(errors.ErrHookLoad, err.Error())
		}
		if err := loadFile(manager, hookType, path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(manager Manager, hookType Type, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "%s: %v", path, err)
	}
	if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
		return errors.Wrapf(errors.ErrHookLoad, "%s: %v", path, err)
	}
	return nil
}

// Template returns a starter script for hookType.
func Template(hookType Type) string {
	switch hookType {
	case PreApply:
		return `// Pre-apply hook
// This script runs before the overlay is placed into the game directory.
// Available variables:
// - gameDir: string - the game directory receiving the overlay
// - sourceDir: string - root searched for the overlay artifacts
// - modsDir: string - the mods folder linked as Mods
// Set err to a non-empty string to abort the launch.

/*
os := import("os")
if is_error(os.stat(gameDir + "/GameAssembly.dll")) {
    err = "not a game directory: " + gameDir
}
*/`

	case PostApply:
		return `// Post-apply hook
// This script runs after the overlay has been placed.
// Available variables: same as pre-apply hook

/*
fmt := import("fmt")
fmt.println("overlay ready in ", gameDir)
*/`

	case PreCleanup:
		return `// Pre-cleanup hook
// This script runs after the game exits, before the overlay is removed.
// Available variables: same as pre-apply hook

/*
os := import("os")
os.remove(gameDir + "/d3d11_log.txt")
*/`

	case PostCleanup:
		return `// Post-cleanup hook
// This script runs after the overlay has been removed.
// Available variables: same as pre-apply hook

/*
fmt := import("fmt")
fmt.println("restored ", gameDir)
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
