package store

import (
	"context"
	"encoding/json"

	"github.com/nikbrunner/bmdeck/internal/storage"
)

// Theme is the persisted color preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// LoadTheme reads the theme preference. Anything but "dark" is light.
func LoadTheme(ctx context.Context, kv storage.KV) Theme {
	data, ok, err := kv.Get(ctx, storage.ThemeKey)
	if err != nil || !ok {
		return ThemeLight
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return ThemeLight
	}
	if Theme(value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// SaveTheme persists the theme preference.
func SaveTheme(ctx context.Context, kv storage.KV, t Theme) error {
	data, err := json.Marshal(string(t))
	if err != nil {
		return err
	}
	return kv.Set(ctx, storage.ThemeKey, data)
}
