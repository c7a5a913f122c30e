//go:generate mockgen -destination=./mocks/installer.go . Installer
package index

import (
	"context"

	"github.com/glorpus-work/modlayer/internal/logger"
)

// Installer is the compatibility-layer collaborator that places a
// translation-layer build into a runtime environment.
type Installer interface {
	// Install installs the build found at buildPath into the environment at prefix.
	Install(ctx context.Context, buildPath, prefix string, params InstallParams) error
	// Uninstall removes the previously installed build from prefix.
	Uninstall(ctx context.Context, prefix string, params InstallParams) error
}

// InstallParams is the option bag forwarded to the Installer.
type InstallParams struct {
	Libraries  []string          `json:"libraries,omitempty"`
	Arch       string            `json:"arch,omitempty"`
	RepairDLLs bool              `json:"repair_dlls"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Install hands installRoot/<name> to installer for the environment at prefix.
func (v *Version) Install(ctx context.Context, installRoot string, installer Installer, prefix string, params InstallParams) error {
	logger.Debug("Installing component version", logger.Fields{
		"name":   v.Name,
		"tag":    v.Version,
		"prefix": prefix,
	})
	return installer.Install(ctx, v.InstallPath(installRoot), prefix, params)
}

// Uninstall asks installer to remove this version from the environment at prefix.
func (v *Version) Uninstall(ctx context.Context, installer Installer, prefix string, params InstallParams) error {
	logger.Debug("Uninstalling component version", logger.Fields{
		"name":   v.Name,
		"prefix": prefix,
	})
	return installer.Uninstall(ctx, prefix, params)
}
