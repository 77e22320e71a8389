// Package settings loads the user interface preferences that shape output:
// capitalization, id visibility, the default format and paging. Values come
// from an optional config file and RECORDFMT_* environment variables.
package settings

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-recordfmt/pkg/capitalize"
)

const envPrefix = "RECORDFMT"

// Keys understood in config files, dotted as viper sees them.
const (
	KeyCapitalization = "ui.capitalization"
	KeyShowIDs        = "ui.show_ids"
	KeyFormat         = "ui.format"
	KeyPerPage        = "ui.per_page"
	KeyColor          = "ui.color"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// UI holds the resolved preferences.
type UI struct {
	Capitalization string
	ShowIDs        bool
	Format         string
	PerPage        int
	Color          string
}

// Defaults returns the preferences used when nothing is configured.
func Defaults() UI {
	return UI{Format: "base", PerPage: 20, Color: ColorAuto}
}

// Load reads path (when non-empty) and overlays environment variables such
// as RECORDFMT_UI_CAPITALIZATION.
func Load(path string) (UI, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyCapitalization, defaults.Capitalization)
	v.SetDefault(KeyShowIDs, defaults.ShowIDs)
	v.SetDefault(KeyFormat, defaults.Format)
	v.SetDefault(KeyPerPage, defaults.PerPage)
	v.SetDefault(KeyColor, defaults.Color)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return UI{}, fmt.Errorf("settings: read %s: %w", path, err)
		}
	}

	var ui UI
	ui.InitFromViper(v)
	if err := ui.Validate(); err != nil {
		return UI{}, err
	}
	return ui, nil
}

// InitFromViper fills ui from v.
func (ui *UI) InitFromViper(v *viper.Viper) {
	ui.Capitalization = strings.TrimSpace(v.GetString(KeyCapitalization))
	ui.ShowIDs = v.GetBool(KeyShowIDs)
	ui.Format = strings.ToLower(strings.TrimSpace(v.GetString(KeyFormat)))
	ui.PerPage = v.GetInt(KeyPerPage)
	ui.Color = strings.ToLower(strings.TrimSpace(v.GetString(KeyColor)))
}

// Validate rejects values no component can act on. Unsupported
// capitalization modes are not rejected here; the transformer warns instead.
func (ui UI) Validate() error {
	if ui.PerPage < 0 {
		return fmt.Errorf("settings: %s must not be negative, got %d", KeyPerPage, ui.PerPage)
	}
	switch ui.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("settings: %s must be one of %s, %s, %s, got %q", KeyColor, ColorAuto, ColorAlways, ColorNever, ui.Color)
	}
	return nil
}

// Capitalizer builds the transformer for the configured mode. Warnings go
// to errOut.
func (ui UI) Capitalizer(errOut io.Writer) *capitalize.Transformer {
	return capitalize.New(ui.Capitalization, capitalize.WithErrorOutput(errOut))
}

// UseColor resolves the color mode against whether the output is a terminal.
func (ui UI) UseColor(terminal bool) bool {
	switch ui.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal
	}
}
