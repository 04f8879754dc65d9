package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/benoitkugler/svgtricks/svgicon"
	"github.com/benoitkugler/svgtricks/svgrule"
)

// config holds the settings shared by the commands.
type config struct {
	ErrorMode  svgicon.ErrorMode
	Scale      float64     // raster pixels per user unit
	Background color.Color // raster background, nil for transparent
	RuleLength float64
	FontSize   float64
	Margin     float64 // added around the content when fitting
}

func defaultConfig() config {
	return config{
		ErrorMode:  svgicon.WarnErrorMode,
		Scale:      1,
		RuleLength: svgrule.DefaultRuleLength,
		FontSize:   svgrule.DefaultFontSize,
		Margin:     10,
	}
}

type fileConfig struct {
	ErrorMode  string  `toml:"error_mode"`
	Scale      float64 `toml:"scale"`
	Background string  `toml:"background"`
	RuleLength float64 `toml:"rule_length"`
	FontSize   float64 `toml:"font_size"`
	Margin     float64 `toml:"margin"`
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("error_mode") {
		mode, ok := svgicon.ParseErrorMode(strings.TrimSpace(raw.ErrorMode))
		if !ok {
			return config{}, fmt.Errorf("parse error_mode: unknown mode %q", raw.ErrorMode)
		}
		cfg.ErrorMode = mode
	}

	if meta.IsDefined("scale") {
		if raw.Scale <= 0 {
			return config{}, fmt.Errorf("parse scale: must be positive, got %g", raw.Scale)
		}
		cfg.Scale = raw.Scale
	}

	if meta.IsDefined("background") {
		c, err := svgicon.ParseColor(raw.Background)
		if err != nil {
			return config{}, fmt.Errorf("parse background: %w", err)
		}
		cfg.Background = c
	}

	if meta.IsDefined("rule_length") {
		if raw.RuleLength < 0 {
			return config{}, fmt.Errorf("parse rule_length: must not be negative, got %g", raw.RuleLength)
		}
		cfg.RuleLength = raw.RuleLength
	}

	if meta.IsDefined("font_size") {
		if raw.FontSize <= 0 {
			return config{}, fmt.Errorf("parse font_size: must be positive, got %g", raw.FontSize)
		}
		cfg.FontSize = raw.FontSize
	}

	if meta.IsDefined("margin") {
		cfg.Margin = raw.Margin
	}

	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// ruleOptions returns the rule settings of the config.
func (c config) ruleOptions() []svgrule.Option {
	return []svgrule.Option{svgrule.WithRuleLength(c.RuleLength), svgrule.WithFontSize(c.FontSize)}
}
