package main

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"traykit"
)

// Config is the YAML description of a tray: appearance plus the menu tree.
type Config struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	IconName string        `yaml:"icon_name"`
	Tooltip  TooltipConfig `yaml:"tooltip"`
	Menu     []EntryConfig `yaml:"menu"`
}

type TooltipConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	IconName    string `yaml:"icon_name"`
}

// EntryConfig is one menu entry. Type selects the kind: item, checkmark,
// radio, submenu, or separator. Submenu children may not nest further, which
// matches the construction API.
type EntryConfig struct {
	Type     string `yaml:"type"`
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	IconName string `yaml:"icon_name"`
	Enabled  *bool  `yaml:"enabled"`
	Visible  *bool  `yaml:"visible"`
	Checked  bool   `yaml:"checked"`

	// Radio groups only.
	Selected int            `yaml:"selected"`
	Options  []OptionConfig `yaml:"options"`

	// Submenus only.
	Items []EntryConfig `yaml:"items"`
}

type OptionConfig struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	IconName string `yaml:"icon_name"`
	Enabled  *bool  `yaml:"enabled"`
	Visible  *bool  `yaml:"visible"`
}

// LoadConfig reads and parses a tray configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if cfg.ID == "" {
		cfg.ID = "traydemo"
	}

	return &cfg, nil
}

func orTrue(b *bool) bool {
	if b == nil {
		return true
	}

	return *b
}

// Apply replaces the tray state with the configured appearance and menu.
func (c *Config) Apply(tray *traykit.TrayIcon) error {
	tray.SetTrayID(c.ID)

	if c.Title != "" {
		tray.SetTitle(c.Title)
	}

	if c.IconName != "" {
		tray.SetIconName(c.IconName)
	}

	tray.SetToolTip(traykit.ToolTip{
		IconName:    c.Tooltip.IconName,
		Title:       c.Tooltip.Title,
		Description: c.Tooltip.Description,
	})

	tray.ClearMenu()

	for _, entry := range c.Menu {
		if err := applyEntry(tray, entry); err != nil {
			return err
		}
	}

	return nil
}

func applyEntry(tray *traykit.TrayIcon, entry EntryConfig) error {
	enabled, visible := orTrue(entry.Enabled), orTrue(entry.Visible)

	switch entry.Type {
	case "item":
		tray.AddItem(entry.ID, entry.Label, entry.IconName, enabled, visible)

	case "checkmark":
		tray.AddCheckmark(entry.ID, entry.Label, entry.IconName, entry.Checked, enabled, visible)

	case "separator":
		tray.AddSeparator()

	case "radio":
		tray.AddRadioGroup(entry.ID, entry.Selected)
		for _, option := range entry.Options {
			tray.AddRadioOption(entry.ID, option.ID, option.Label, option.IconName, orTrue(option.Enabled), orTrue(option.Visible))
		}

	case "submenu":
		tray.BeginSubMenu(entry.Label, entry.IconName, enabled, visible)
		for _, child := range entry.Items {
			if err := applySubEntry(tray, entry.Label, child); err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("config: unknown menu entry type %q", entry.Type)
	}

	return nil
}

func applySubEntry(tray *traykit.TrayIcon, submenuLabel string, entry EntryConfig) error {
	enabled, visible := orTrue(entry.Enabled), orTrue(entry.Visible)

	switch entry.Type {
	case "item":
		tray.AddSubMenuItem(submenuLabel, entry.ID, entry.Label, entry.IconName, enabled, visible)

	case "checkmark":
		tray.AddSubMenuCheckmark(submenuLabel, entry.ID, entry.Label, entry.IconName, entry.Checked, enabled, visible)

	case "separator":
		tray.AddSubMenuSeparator(submenuLabel)

	default:
		return fmt.Errorf("config: unsupported submenu entry type %q", entry.Type)
	}

	return nil
}
