package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/layoutcanvas/internal/theme"
)

// Notify selects which editor notices also raise a desktop notification.
type Notify struct {
	Layout bool
	Fill   bool
	Export bool
	Copy   bool
	Error  bool
}

// AI configures the layout detection and background fill services.
type AI struct {
	Endpoint string
	Timeout  time.Duration
	Detector string // http, contour or none; empty picks from Endpoint
	Filler   string // http, blur or none; empty picks from Endpoint
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Canvas     string // initial canvas size as WxH
	Background *color.RGBA
	Presets    []string
	AI         AI
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		AI: AI{
			Timeout: 60 * time.Second,
		},
		Notify: Notify{
			Error: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Canvas != "" {
		fmt.Fprintf(&sb, "canvas = %s\n", c.Canvas)
	}
	if c.Background != nil {
		fmt.Fprintf(&sb, "background = %s\n", theme.FormatColor(*c.Background))
	}
	sb.WriteString("\n")

	if len(c.Presets) > 0 {
		sb.WriteString("[presets]\n")
		for _, p := range c.Presets {
			fmt.Fprintf(&sb, "size = %s\n", p)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[ai]\n")
	if c.AI.Endpoint != "" {
		fmt.Fprintf(&sb, "endpoint = %s\n", c.AI.Endpoint)
	}
	fmt.Fprintf(&sb, "timeout = %s\n", c.AI.Timeout)
	if c.AI.Detector != "" {
		fmt.Fprintf(&sb, "detector = %s\n", c.AI.Detector)
	}
	if c.AI.Filler != "" {
		fmt.Fprintf(&sb, "filler = %s\n", c.AI.Filler)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "layout = %v\n", c.Notify.Layout)
	fmt.Fprintf(&sb, "fill = %v\n", c.Notify.Fill)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Encode(&sb, c.Themes[name], " = ")
		sb.WriteString("\n")
	}

	return sb.String()
}

// Enabled reports whether notices on topic should raise a desktop
// notification. Errors follow the Error switch regardless of topic.
func (n Notify) Enabled(topic string, isError bool) bool {
	if isError {
		return n.Error
	}
	switch topic {
	case "layout":
		return n.Layout
	case "fill":
		return n.Fill
	case "export":
		return n.Export
	case "copy":
		return n.Copy
	}
	return false
}

// LookupTheme resolves a theme defined inline in the config.
func (c *Config) LookupTheme(name string) (*theme.Theme, bool) {
	t, ok := c.Themes[name]
	return t, ok
}
