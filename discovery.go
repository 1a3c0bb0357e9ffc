// FILE: lixenwraith/settings/discovery.go
package settings

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultAppName names the settings directory under the user config directory.
const DefaultAppName = "napari"

// FileDiscoveryOptions controls where Builder looks for the settings file.
type FileDiscoveryOptions struct {
	AppName    string   // Directory name under each config root
	Name       string   // File name without extension
	Extensions []string // Tried in order within each directory
	EnvVar     string   // Explicit path override, e.g. NAPARI_SETTINGS
	CLIFlag    string   // Explicit path flag, e.g. --file
	Dirs       []string // Searched before the per-user and system config roots
}

// DefaultDiscoveryOptions returns options for appName: settings.{yaml,yml,json,toml},
// APPNAME_SETTINGS and --file.
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		AppName:    appName,
		Name:       "settings",
		Extensions: []string{".yaml", ".yml", ".json", ".toml"},
		EnvVar:     strings.ToUpper(appName) + "_SETTINGS",
		CLIFlag:    "--file",
	}
}

// DefaultPath returns where settings live when nothing else is configured,
// e.g. ~/.config/napari/settings.yaml.
func DefaultPath(appName string) string {
	return filepath.Join(userConfigRoot(), appName, "settings.yaml")
}

// Discover resolves the settings file path: the CLI flag, then the environment
// variable, then the first existing file under the search directories.
// When no file exists the default path is returned so the first save creates it.
func (opts FileDiscoveryOptions) Discover(args []string) string {
	if path, ok := flagValue(args, opts.CLIFlag); ok {
		return path
	}
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}
	if path, ok := opts.firstExisting(); ok {
		return path
	}
	return DefaultPath(opts.AppName)
}

func (opts FileDiscoveryOptions) firstExisting() (string, bool) {
	dirs := append([]string{}, opts.Dirs...)
	for _, root := range configRoots() {
		dirs = append(dirs, filepath.Join(root, opts.AppName))
	}

	for _, dir := range dirs {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

// flagValue finds "--flag value" or "--flag=value" in args.
func flagValue(args []string, flag string) (string, bool) {
	if flag == "" {
		return "", false
	}
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value, true
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

// configRoots returns the per-user config root followed by the XDG system roots.
func configRoots() []string {
	roots := []string{userConfigRoot()}
	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		return append(roots, filepath.SplitList(dirs)...)
	}
	return append(roots, "/etc/xdg")
}

// userConfigRoot is $XDG_CONFIG_HOME, or the platform user config directory.
func userConfigRoot() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
