package index

import (
	"sort"

	"github.com/hashicorp/go-version"
)

// Group is a named family of component releases. Versions are ordered newest
// first, as they appear in the manifest.
type Group struct {
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Features Features  `json:"features"`
	Versions []Version `json:"versions"`
}

// Version is one installable release of a component.
type Version struct {
	Name     string    `json:"name"`
	Version  string    `json:"version"`
	URI      string    `json:"uri"`
	Features *Features `json:"features,omitempty"`
}

// Features holds the environment applied when a version is used. Values may
// contain %build%, %prefix%, %temp%, %launcher% and %game% placeholders which
// the caller resolves at launch time.
type Features struct {
	Env map[string]string `json:"env"`
}

// Warning describes a manifest entry that was dropped during parsing, or
// kept with its features ignored when Kept is set. Version is -1 for
// group-level warnings.
type Warning struct {
	Group   int    `json:"group"`
	Version int    `json:"version"`
	Reason  string `json:"reason"`
	Kept    bool   `json:"kept,omitempty"`
}

// HasVersion reports whether the group contains a version whose name equals name.
func (g *Group) HasVersion(name string) bool {
	for i := range g.Versions {
		if g.Versions[i].Name == name {
			return true
		}
	}
	return false
}

// EffectiveFeatures returns the version override when present, otherwise the
// group default.
func (v *Version) EffectiveFeatures(group *Group) Features {
	if v.Features != nil {
		return *v.Features
	}
	if group == nil {
		return Features{Env: map[string]string{}}
	}
	return group.Features
}

// SemVer parses the version tag, returning nil when it is not version-like.
func (v *Version) SemVer() *version.Version {
	parsed, err := version.NewVersion(v.Version)
	if err != nil {
		return nil
	}
	return parsed
}

// SortedByTag returns a copy of versions ordered newest tag first for
// display. Tags that do not parse keep their relative order after the
// parsed ones. Lookups always use manifest order, never this one.
func SortedByTag(versions []Version) []Version {
	out := make([]Version, len(versions))
	copy(out, versions)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].SemVer(), out[j].SemVer()
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.GreaterThan(b)
		}
	})
	return out
}

// Matches reports whether query equals the version's name or tag.
func (v *Version) Matches(query string) bool {
	return v.Name == query || v.Version == query
}
