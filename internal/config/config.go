package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dagster-io/workstack/internal/logs"
)

const (
	GlobalConfigFile = "config.yaml"
	LocalConfigFile  = "workstack_repo.yaml"

	// Keys the lander cares about.
	KeyStackingTool = "stacking_tool"
	KeyWorktreeRoot = "worktree_root"
	KeyTrunkBranch  = "trunk_branch"
)

func getXDGConfigPath() (string, error) {
	// XDG_CONFIG_HOME or fallback to ~/.config
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "workstack", GlobalConfigFile), nil
}

// Config holds the merged global + per-repo settings for one invocation.
// Local values override global ones. No package-level state: the command
// layer constructs one Config and threads it through explicitly.
type Config struct {
	global   map[string]string
	local    map[string]string
	repoRoot string
}

// Load reads the global config and the repo config under repoRoot, creating
// the global file with defaults on first use. A missing repo config is not
// an error; it just means stacking-tool integration is not enabled yet.
func Load(repoRoot string) (*Config, error) {
	c := &Config{
		global:   map[string]string{},
		local:    map[string]string{},
		repoRoot: repoRoot,
	}

	globalPath, err := getXDGConfigPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(globalPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %v", err)
	}
	if _, err := os.Stat(globalPath); os.IsNotExist(err) {
		def := map[string]string{KeyTrunkBranch: ""}
		if e := saveYAML(globalPath, def); e != nil {
			return nil, e
		}
	}
	if data, err := loadYAML(globalPath); err == nil {
		for k, v := range data {
			c.global[k] = v
		}
	} else {
		return nil, err
	}

	localPath := filepath.Join(repoRoot, LocalConfigFile)
	if _, err := os.Stat(localPath); err == nil {
		data, err := loadYAML(localPath)
		if err != nil {
			return nil, err
		}
		for k, v := range data {
			c.local[k] = v
		}
	}
	logs.Debug("Loaded config (global=%d keys, local=%d keys)", len(c.global), len(c.local))
	return c, nil
}

// NewStatic returns a Config backed by the given values without touching
// disk. Used by tests and by callers that already resolved settings.
func NewStatic(repoRoot string, values map[string]string) *Config {
	c := &Config{
		global:   map[string]string{},
		local:    map[string]string{},
		repoRoot: repoRoot,
	}
	for k, v := range values {
		c.local[k] = v
	}
	return c
}

// InitRepo writes a fresh repo config enabling Graphite integration.
func (c *Config) InitRepo() error {
	c.local[KeyStackingTool] = "graphite"
	if c.local[KeyWorktreeRoot] == "" {
		c.local[KeyWorktreeRoot] = "worktrees"
	}
	return saveYAML(filepath.Join(c.repoRoot, LocalConfigFile), c.local)
}

// Get returns the value for key, with local overriding global.
func (c *Config) Get(key string) string {
	if val, ok := c.local[key]; ok {
		return val
	}
	if val, ok := c.global[key]; ok {
		return val
	}
	return ""
}

// Set stores key=value locally or globally and persists the change.
func (c *Config) Set(key, value string, global bool) error {
	if global {
		globalPath, err := getXDGConfigPath()
		if err != nil {
			return err
		}
		c.global[key] = value
		return saveYAML(globalPath, c.global)
	}
	c.local[key] = value
	return saveYAML(filepath.Join(c.repoRoot, LocalConfigFile), c.local)
}

// StackingEnabled reports whether stacking-tool integration is configured
// for this repository.
func (c *Config) StackingEnabled() bool {
	return strings.TrimSpace(c.Get(KeyStackingTool)) != ""
}

// WorktreeRoot returns the absolute directory where linked worktrees live.
func (c *Config) WorktreeRoot() string {
	root := c.Get(KeyWorktreeRoot)
	if root == "" {
		root = "worktrees"
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(c.repoRoot, root)
	}
	return root
}

func saveYAML(path string, data map[string]string) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

func loadYAML(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := make(map[string]string)
	if err := yaml.Unmarshal(content, &d); err != nil {
		return nil, err
	}
	return d, nil
}
