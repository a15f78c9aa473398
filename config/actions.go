package config

import (
	"fmt"

	"github.com/peco/promptkit/keymap"
)

// BindActions resolves each pattern -> action name entry in c.Keymap
// against actions (the application's canonical name-to-Handler table)
// and binds the result onto kb. Call kb.Compile after BindActions
// returns successfully.
func (c *Config) BindActions(kb *keymap.Keybind, actions map[string]keymap.Handler) error {
	for pattern, name := range c.Keymap {
		h, ok := actions[name]
		if !ok {
			return fmt.Errorf("config: keymap entry %q refers to unknown action %q", pattern, name)
		}
		if err := kb.Bind(pattern, h); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}
