package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config is the user's keybinding file. Each section maps an action name to
// a comma separated list of keys, replacing the defaults for that action.
type Config struct {
	Version      string            `json:"version"`
	Global       map[string]string `json:"global,omitempty"`
	Normal       map[string]string `json:"normal,omitempty"`
	Picker       map[string]string `json:"picker,omitempty"`
	Recent       map[string]string `json:"recent,omitempty"`
	RecentFilter map[string]string `json:"recent_filter,omitempty"`
	Help         map[string]string `json:"help,omitempty"`
}

// reservedKeys cannot be rebound to another action
var reservedKeys = map[string]Action{
	"ctrl+c": ActionQuitForce,
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:       c.Global,
		ContextNormal:       c.Normal,
		ContextPicker:       c.Picker,
		ContextRecent:       c.Recent,
		ContextRecentFilter: c.RecentFilter,
		ContextHelp:         c.Help,
	}
}

// ApplyConfig applies user configuration to a registry.
// User bindings replace the default keys of each action they name.
func ApplyConfig(registry *Registry, config *Config) error {
	for context, section := range config.sections() {
		for actionName, keyList := range section {
			action := Action(actionName)
			if !IsKnownAction(action) {
				return fmt.Errorf("unknown action %q in %s section", actionName, context)
			}

			keys := splitKeys(keyList)
			for _, key := range keys {
				if reserved, ok := reservedKeys[key]; ok && reserved != action {
					return fmt.Errorf("key %q is reserved for %s", key, reserved)
				}
			}

			registry.Unbind(context, action)
			registry.RegisterMultiple(context, keys, action)
		}
	}
	return nil
}

func splitKeys(list string) []string {
	var keys []string
	for _, k := range strings.Split(list, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}
		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}

	return registry, nil
}

// ExportDefaults returns the default bindings in config file form
func ExportDefaults() *Config {
	r := NewDefaultRegistry()
	config := &Config{Version: "1.0"}

	export := func(ctx Context) map[string]string {
		section := map[string]string{}
		for _, b := range r.ListBindings(ctx) {
			if _, done := section[string(b.Action)]; done {
				continue
			}
			section[string(b.Action)] = strings.Join(r.GetBinding(ctx, b.Action), ",")
		}
		return section
	}

	config.Global = export(ContextGlobal)
	config.Normal = export(ContextNormal)
	config.Picker = export(ContextPicker)
	config.Recent = export(ContextRecent)
	config.RecentFilter = export(ContextRecentFilter)
	config.Help = export(ContextHelp)
	return config
}
