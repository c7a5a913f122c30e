// Package index reads the component version manifest and answers lookups
// over its groups and versions. Every lookup reloads the manifest; callers
// that need many lookups can load once with LoadFile and use the Groups
// helpers directly.
package index

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/modlayer/pkg/errors"
)

// Groups is a parsed manifest in index order.
type Groups []Group

// FindGroup returns the first group named query or containing a version
// named query.
func (gs Groups) FindGroup(query string) *Group {
	for i := range gs {
		if gs[i].Name == query || gs[i].HasVersion(query) {
			group := gs[i]
			return &group
		}
	}
	return nil
}

// FindVersion returns the first version, across groups in order, whose name
// or tag equals query.
func (gs Groups) FindVersion(query string) *Version {
	for i := range gs {
		for j := range gs[i].Versions {
			if gs[i].Versions[j].Matches(query) {
				v := gs[i].Versions[j]
				return &v
			}
		}
	}
	return nil
}

// Latest returns the first version of the first group.
func (gs Groups) Latest() (Version, error) {
	if len(gs) == 0 || len(gs[0].Versions) == 0 {
		return Version{}, errors.ErrIndexEmpty
	}
	return gs[0].Versions[0], nil
}

// Downloaded filters every group to the versions installed under
// installRoot, dropping groups left empty.
func (gs Groups) Downloaded(installRoot string) Groups {
	result := make(Groups, 0, len(gs))
	for _, group := range gs {
		installed := make([]Version, 0, len(group.Versions))
		for _, v := range group.Versions {
			if IsInstalled(v, installRoot) {
				installed = append(installed, v)
			}
		}
		if len(installed) > 0 {
			group.Versions = installed
			result = append(result, group)
		}
	}
	return result
}

// ListGroups parses the manifest at source.
func ListGroups(source string) ([]Group, error) {
	return LoadFile(source)
}

// FindGroup looks up a group by its own name or by one of its version names.
// A miss returns nil with a nil error.
func FindGroup(source, query string) (*Group, error) {
	groups, err := LoadFile(source)
	if err != nil {
		return nil, err
	}
	return Groups(groups).FindGroup(query), nil
}

// FindVersion looks up a version by name or tag. A miss returns nil with a
// nil error.
func FindVersion(source, query string) (*Version, error) {
	groups, err := LoadFile(source)
	if err != nil {
		return nil, err
	}
	return Groups(groups).FindVersion(query), nil
}

// Latest returns the recommended version: the first version of the first group.
func Latest(source string) (Version, error) {
	groups, err := LoadFile(source)
	if err != nil {
		return Version{}, err
	}
	return Groups(groups).Latest()
}

// Downloaded lists the groups of source restricted to versions installed
// under installRoot.
func Downloaded(source, installRoot string) ([]Group, error) {
	groups, err := LoadFile(source)
	if err != nil {
		return nil, err
	}
	return Groups(groups).Downloaded(installRoot), nil
}

// IsInstalled reports whether a directory named after the version exists
// under installRoot. Contents are not validated.
func IsInstalled(v Version, installRoot string) bool {
	info, err := os.Stat(v.InstallPath(installRoot))
	return err == nil && info.IsDir()
}

// InstallPath is the directory the version occupies under installRoot.
func (v *Version) InstallPath(installRoot string) string {
	return filepath.Join(installRoot, v.Name)
}

// FindGroup returns the group of source that contains this version, matched
// by version name or tag against the receiver's name.
func (v *Version) FindGroup(source string) (*Group, error) {
	groups, err := LoadFile(source)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		for j := range groups[i].Versions {
			if groups[i].Versions[j].Matches(v.Name) {
				group := groups[i]
				return &group, nil
			}
		}
	}
	return nil, nil
}
