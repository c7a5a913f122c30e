package index

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/errors"
)

// ParseWithWarnings decodes a manifest. Group and version entries with
// missing or mistyped required fields are dropped and reported as warnings;
// a group left without versions is dropped too, as is a group whose name
// repeats an earlier one. A malformed optional features value is read as an
// empty env and also reported, but the entry is kept. Only unreadable JSON
// or a non-array document is an error.
func ParseWithWarnings(data []byte) ([]Group, []Warning, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse component index")
	}

	groups := make([]Group, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	var warnings []Warning

	for gi, rawGroup := range raw {
		group, groupWarnings, err := parseGroup(gi, rawGroup)
		warnings = append(warnings, groupWarnings...)
		if err != nil {
			warnings = append(warnings, Warning{Group: gi, Version: -1, Reason: err.Error()})
			continue
		}
		if _, dup := seen[group.Name]; dup {
			warnings = append(warnings, Warning{Group: gi, Version: -1, Reason: fmt.Sprintf("duplicate group name %q", group.Name)})
			continue
		}
		seen[group.Name] = struct{}{}
		groups = append(groups, group)
	}

	for _, w := range warnings {
		logger.Debug("Malformed index entry", logger.Fields{
			"group":   w.Group,
			"version": w.Version,
			"reason":  w.Reason,
			"kept":    w.Kept,
		})
	}

	return groups, warnings, nil
}

// Parse decodes a manifest, silently dropping malformed entries.
func Parse(data []byte) ([]Group, error) {
	groups, _, err := ParseWithWarnings(data)
	return groups, err
}

// LoadFile decodes the manifest stored at path.
func LoadFile(path string) ([]Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open component index %s", path)
	}
	return Parse(data)
}

func parseGroup(gi int, data json.RawMessage) (Group, []Warning, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Group{}, nil, fmt.Errorf("group is not an object")
	}

	name, err := requiredString(fields, "name")
	if err != nil {
		return Group{}, nil, err
	}
	title, err := optionalString(fields, "title")
	if err != nil {
		return Group{}, nil, err
	}
	if title == "" {
		title = name
	}

	var rawVersions []json.RawMessage
	if err := json.Unmarshal(fields["versions"], &rawVersions); err != nil {
		return Group{}, nil, fmt.Errorf("group %q has no versions array", name)
	}

	var warnings []Warning
	features := Features{Env: map[string]string{}}
	if rawFeatures, ok := fields["features"]; ok && string(rawFeatures) != "null" {
		if features, err = parseFeatures(rawFeatures); err != nil {
			warnings = append(warnings, Warning{Group: gi, Version: -1, Reason: err.Error(), Kept: true})
		}
	}

	versions := make([]Version, 0, len(rawVersions))
	for vi, rawVersion := range rawVersions {
		v, note, err := parseVersion(rawVersion)
		if err != nil {
			warnings = append(warnings, Warning{Group: gi, Version: vi, Reason: err.Error()})
			continue
		}
		if note != nil {
			warnings = append(warnings, Warning{Group: gi, Version: vi, Reason: note.Error(), Kept: true})
		}
		versions = append(versions, v)
	}
	if len(versions) == 0 {
		return Group{}, warnings, fmt.Errorf("group %q has no valid versions", name)
	}

	return Group{Name: name, Title: title, Features: features, Versions: versions}, warnings, nil
}

// parseVersion returns a non-nil note when the version is kept but its
// features could not be read.
func parseVersion(data json.RawMessage) (v Version, note, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Version{}, nil, fmt.Errorf("version is not an object")
	}

	if v.Name, err = requiredString(fields, "name"); err != nil {
		return Version{}, nil, err
	}
	if v.Version, err = requiredString(fields, "version"); err != nil {
		return Version{}, nil, err
	}
	if v.URI, err = requiredString(fields, "uri"); err != nil {
		return Version{}, nil, err
	}
	if rawFeatures, ok := fields["features"]; ok && string(rawFeatures) != "null" {
		features, ferr := parseFeatures(rawFeatures)
		v.Features = &features
		note = ferr
	}
	return v, note, nil
}

// parseFeatures reads {"env": {...}}. Non-string env values keep their JSON
// text, so 1 becomes "1" and true becomes "true". On error the returned
// Features still holds an empty env.
func parseFeatures(data json.RawMessage) (Features, error) {
	features := Features{Env: map[string]string{}}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return features, fmt.Errorf("features is not an object")
	}
	rawEnv, ok := fields["env"]
	if !ok {
		return features, nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(rawEnv, &env); err != nil {
		return features, fmt.Errorf("features.env is not an object")
	}
	for key, value := range env {
		var s string
		if len(value) > 0 && value[0] == '"' && json.Unmarshal(value, &s) == nil {
			features.Env[key] = s
			continue
		}
		features.Env[key] = string(value)
	}
	return features, nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	if s == "" {
		return "", fmt.Errorf("field %q is empty", key)
	}
	return s, nil
}

func optionalString(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q is not a string", key)
	}
	return s, nil
}
