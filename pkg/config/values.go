package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/glorpus-work/modlayer/pkg/errors"
)

// Keys lists the keys accepted by SetValue and GetValue.
var Keys = []string{
	"state_dir",
	"feature",
	"http_timeout",
	"download_retries",
	"user_agent",
	"github_token",
	"output_format",
	"log_level",
	"mods.enabled",
	"mods.source_dir",
	"mods.mods_dir",
	"mods.game_dir",
	"components.index",
	"components.install_root",
}

// SetValue sets a configuration value by key and revalidates the result.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "state_dir":
		c.Settings.StateDir = value
	case "feature":
		c.Settings.Feature = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "download_retries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Settings.DownloadRetries = n
	case "user_agent":
		c.Settings.UserAgent = value
	case "github_token":
		c.Settings.GitHubToken = value
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	case "mods.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Mods.Enabled = b
	case "mods.source_dir":
		c.Mods.SourceDir = value
	case "mods.mods_dir":
		c.Mods.ModsDir = value
	case "mods.game_dir":
		c.Mods.GameDir = value
	case "components.index":
		c.Components.Index = value
	case "components.install_root":
		c.Components.InstallRoot = value
	default:
		return errors.Wrap(errors.ErrConfigUnknownKey, key)
	}
	return c.Validate()
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "state_dir":
		return c.Settings.StateDir, nil
	case "feature":
		return c.Settings.Feature, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "download_retries":
		return strconv.Itoa(c.Settings.DownloadRetries), nil
	case "user_agent":
		return c.Settings.UserAgent, nil
	case "github_token":
		return c.Settings.GitHubToken, nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "mods.enabled":
		return strconv.FormatBool(c.Mods.Enabled), nil
	case "mods.source_dir":
		return c.Mods.SourceDir, nil
	case "mods.mods_dir":
		return c.Mods.ModsDir, nil
	case "mods.game_dir":
		return c.Mods.GameDir, nil
	case "components.index":
		return c.Components.Index, nil
	case "components.install_root":
		return c.Components.InstallRoot, nil
	default:
		return "", errors.Wrap(errors.ErrConfigUnknownKey, key)
	}
}

// ToMap returns every key with its value, the token masked.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, _ := c.GetValue(key)
		if key == "github_token" && value != "" {
			value = "********"
		}
		result[key] = value
	}
	return result
}
