package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/peco/promptkit/internal/util"
)

// Config holds everything that can be configured for a prompt from an
// external file: the key bindings (as pattern -> action name, resolved
// against an application-supplied action table) and the widget color
// styles.
type Config struct {
	// Keymap records pattern -> action name; it does not dispatch on
	// its own. An application resolves each action name against its
	// own table of keymap.Handler values and binds it onto a
	// keymap.Keybind via BindActions.
	Keymap map[string]string `json:"Keymap" yaml:"Keymap"`
	Style  StyleSet          `json:"Style" yaml:"Style"`
	Prompt string            `json:"Prompt" yaml:"Prompt"`

	// Height bounds how many terminal rows the prompt occupies, as an
	// absolute line count or a percentage (e.g. "10", "50%"); see
	// HeightSpec. Empty means use the whole terminal.
	Height string `json:"Height" yaml:"Height"`
}

// DefaultPrompt is the prompt symbol shown when none is configured.
const DefaultPrompt = "> "

// New creates a Config populated with default values.
func New() *Config {
	c := &Config{Keymap: map[string]string{}}
	c.Style.init()
	c.Prompt = DefaultPrompt
	return c
}

// ReadFilename reads and decodes filename into c, dispatching on its
// extension (.yaml/.yml via YAML, anything else via JSON).
func (c *Config) ReadFilename(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("config: failed to open %s: %w", filename, err)
	}
	defer f.Close()

	switch ext := filepath.Ext(filename); ext {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(f).Decode(c); err != nil {
			return fmt.Errorf("config: failed to decode YAML: %w", err)
		}
	default:
		if err := json.NewDecoder(f).Decode(c); err != nil {
			return fmt.Errorf("config: failed to decode JSON: %w", err)
		}
	}
	return nil
}

// ResolveHeight parses c.Height (if set) and resolves it against the
// terminal's actual row count. An empty Height resolves to termHeight
// unchanged.
func (c *Config) ResolveHeight(termHeight int) (int, error) {
	if c.Height == "" {
		return termHeight, nil
	}
	spec, err := ParseHeightSpec(c.Height)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return spec.Resolve(termHeight), nil
}

// Locator locates a config file in a given directory.
type Locator interface {
	Locate(dir string) (string, error)
}

// LocatorFunc is a function that implements Locator.
type LocatorFunc func(dir string) (string, error)

// Locate calls the underlying function.
func (f LocatorFunc) Locate(dir string) (string, error) {
	return f(dir)
}

var configFilenames = []string{"config.yaml", "config.yml", "config.json"}

// DefaultLocator searches for a config file with one of the known
// filenames in the given directory.
var DefaultLocator = LocatorFunc(func(dir string) (string, error) {
	for _, basename := range configFilenames {
		file := filepath.Join(dir, basename)
		if _, err := os.Stat(file); err == nil {
			return file, nil
		}
	}
	return "", fmt.Errorf("config: no config file found in %s", dir)
})

// LocateRcfile searches the XDG base-directory locations, in order,
// for a promptkit config file: $XDG_CONFIG_HOME/promptkit (or
// ~/.config/promptkit when XDG_CONFIG_HOME is unset), then each
// $XDG_CONFIG_DIRS entry joined with /promptkit.
func LocateRcfile(locator Locator) (string, error) {
	home, homeErr := util.Homedir()

	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		if file, err := locator.Locate(filepath.Join(dir, "promptkit")); err == nil {
			return file, nil
		}
	} else if homeErr == nil {
		if file, err := locator.Locate(filepath.Join(home, ".config", "promptkit")); err == nil {
			return file, nil
		}
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, string(filepath.ListSeparator)) {
			if file, err := locator.Locate(filepath.Join(dir, "promptkit")); err == nil {
				return file, nil
			}
		}
	}

	return "", errors.New("config: rc file not found")
}
