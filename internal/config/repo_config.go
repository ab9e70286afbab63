// Package config provides repository configuration management,
// including reading and writing gitmerge configuration files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultTrunk is the integration branch used when none is configured
	DefaultTrunk = "main"
	// DefaultRemote is the remote used when none is configured
	DefaultRemote = "origin"

	configFileName = ".gitmerge_config"
)

// Strategy selects how a divergent history is handled
type Strategy string

const (
	// StrategyFastForward only ever moves the integration branch pointer
	StrategyFastForward Strategy = "fast-forward"
	// StrategyMerge falls back to a three-way merge commit when histories diverge
	StrategyMerge Strategy = "merge"
)

// ParseStrategy parses a strategy name
func ParseStrategy(value string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fast-forward", "fastforward", "ff", "ff-only":
		return StrategyFastForward, nil
	case "merge", "three-way", "no-ff":
		return StrategyMerge, nil
	default:
		return "", fmt.Errorf("invalid strategy: %s (must be 'fast-forward' or 'merge')", value)
	}
}

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Trunk      *string `json:"trunk,omitempty"`
	Remote     *string `json:"remote,omitempty"`
	Strategy   *string `json:"strategy,omitempty"`
	Fetch      *bool   `json:"fetch,omitempty"`
	SSHKeyPath *string `json:"sshKeyPath,omitempty"`
}

// configPath returns the location of the config file inside a git directory
func configPath(gitDir string) string {
	return filepath.Join(gitDir, configFileName)
}

// GetRepoConfig reads the repository configuration stored in gitDir
func GetRepoConfig(gitDir string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(gitDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Config doesn't exist - return default
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration into gitDir
func SaveRepoConfig(gitDir string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath(gitDir), configJSON, 0600)
}

// GetTrunk returns the integration branch name, or "main" as default
func (c *RepoConfig) GetTrunk() string {
	if c.Trunk != nil && *c.Trunk != "" {
		return *c.Trunk
	}
	return DefaultTrunk
}

// GetRemote returns the remote name, or "origin" as default
func (c *RepoConfig) GetRemote() string {
	if c.Remote != nil && *c.Remote != "" {
		return *c.Remote
	}
	return DefaultRemote
}

// GetStrategy returns the configured strategy, defaulting to fast-forward
func (c *RepoConfig) GetStrategy() (Strategy, error) {
	if c.Strategy == nil || *c.Strategy == "" {
		return StrategyFastForward, nil
	}
	return ParseStrategy(*c.Strategy)
}

// IsFetchEnabled reports whether the remote is fetched before merging (default true)
func (c *RepoConfig) IsFetchEnabled() bool {
	if c.Fetch == nil {
		return true
	}
	return *c.Fetch
}

// GetSSHKeyPath returns the configured private key path, expanding a leading ~
func (c *RepoConfig) GetSSHKeyPath() string {
	if c.SSHKeyPath == nil || *c.SSHKeyPath == "" {
		return ""
	}
	path := *c.SSHKeyPath
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// Keys understood by Get and Set
const (
	KeyTrunk    = "trunk"
	KeyRemote   = "remote"
	KeyStrategy = "strategy"
	KeyFetch    = "fetch"
	KeySSHKey   = "ssh-key"
)

// Keys returns the configuration keys in display order
func Keys() []string {
	return []string{KeyTrunk, KeyRemote, KeyStrategy, KeyFetch, KeySSHKey}
}

// Get returns the effective value for key
func (c *RepoConfig) Get(key string) (string, error) {
	switch key {
	case KeyTrunk:
		return c.GetTrunk(), nil
	case KeyRemote:
		return c.GetRemote(), nil
	case KeyStrategy:
		strategy, err := c.GetStrategy()
		return string(strategy), err
	case KeyFetch:
		return strconv.FormatBool(c.IsFetchEnabled()), nil
	case KeySSHKey:
		return c.GetSSHKeyPath(), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set validates value and stores it under key
func (c *RepoConfig) Set(key, value string) error {
	switch key {
	case KeyTrunk:
		c.Trunk = &value
	case KeyRemote:
		c.Remote = &value
	case KeyStrategy:
		strategy, err := ParseStrategy(value)
		if err != nil {
			return err
		}
		s := string(strategy)
		c.Strategy = &s
	case KeyFetch:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for fetch: %s (must be true or false)", value)
		}
		c.Fetch = &enabled
	case KeySSHKey:
		c.SSHKeyPath = &value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
