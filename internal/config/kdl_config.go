package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a ".quickersfv.kdl" file
// in dir. It returns (nil, nil) when no such file exists so callers
// can fall back to Default().
func LoadKDL(dir string) (*Config, error) {
	kdlPath := filepath.Join(dir, ".quickersfv.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .quickersfv.kdl: %w", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg.Providers.PluginDir != "" && !filepath.IsAbs(cfg.Providers.PluginDir) {
		cfg.Providers.PluginDir = filepath.Join(dir, cfg.Providers.PluginDir)
	}
	if cfg.Providers.RegistryPath != "" && !filepath.IsAbs(cfg.Providers.RegistryPath) {
		cfg.Providers.RegistryPath = filepath.Join(dir, cfg.Providers.RegistryPath)
	}

	return cfg, nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "hasher":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "use-avx512":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Hasher.UseAVX512 = b
					}
				case "use-sse42":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Hasher.UseSSE42 = b
					}
				}
			}
		case "io":
			for _, cn := range n.Children {
				if nodeName(cn) != "buffer-size" {
					continue
				}
				if v, ok := firstIntArg(cn); ok {
					cfg.IO.BufferSize = int64(v)
				} else if s, ok := firstStringArg(cn); ok {
					if sz, err := parseSize(s); err == nil {
						cfg.IO.BufferSize = sz
					}
				}
			}
		case "providers":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "plugin-dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Providers.PluginDir = s
					}
				case "registry":
					if s, ok := firstStringArg(cn); ok {
						cfg.Providers.RegistryPath = s
					}
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// parseSize handles size strings like "4MB", "512KB".
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}
