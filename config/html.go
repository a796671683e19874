package config

import (
	"path/filepath"
)

const htmlNamespace = "html"

// Playpen configures editable code snippets.
type Playpen struct {
	Editor   string `yaml:"editor"`
	Editable bool   `yaml:"editable"`
}

// HTMLConfig is what HTML renderer needs from the configuration. Empty
// strings stand for absent optional values.
type HTMLConfig struct {
	Theme           string         `yaml:"theme,omitempty"`
	CurlyQuotes     bool           `yaml:"curly-quotes"`
	MathJaxSupport  bool           `yaml:"mathjax-support"`
	GoogleAnalytics string         `yaml:"google-analytics,omitempty"`
	AdditionalCSS   []string       `yaml:"additional-css"`
	AdditionalJS    []string       `yaml:"additional-js"`
	Playpen         Playpen        `yaml:"playpen"`
	NoSectionLabel  bool           `yaml:"no-section-label"`
	ThemeData       map[string]any `yaml:"theme-data,omitempty"`

	// LiveReloadURL is set by the serving side only.
	LiveReloadURL string `yaml:"-"`
}

func DefaultHTMLConfig() *HTMLConfig {
	return &HTMLConfig{
		AdditionalCSS: []string{},
		AdditionalJS:  []string{},
		Playpen: Playpen{
			Editor: "ace",
		},
	}
}

// HTML returns renderer configuration from "output.html" on top of defaults.
func (c *Config) HTML() (*HTMLConfig, error) {
	cfg := DefaultHTMLConfig()
	s, ok := c.Output[htmlNamespace]
	if !ok {
		return cfg, nil
	}
	if err := s.DecodeInto("output."+htmlNamespace, cfg); err != nil {
		return nil, err
	}
	if cfg.AdditionalCSS == nil {
		cfg.AdditionalCSS = []string{}
	}
	if cfg.AdditionalJS == nil {
		cfg.AdditionalJS = []string{}
	}
	return cfg, nil
}

// ThemeDir resolves theme location against book root. Empty result means
// built-in theme.
func (h *HTMLConfig) ThemeDir(root string) string {
	if len(h.Theme) == 0 {
		return ""
	}
	if filepath.IsAbs(h.Theme) {
		return filepath.Clean(h.Theme)
	}
	return filepath.Join(root, h.Theme)
}
